package app

import "strings"

// Command selects the workflow an App runs.
type Command string

const (
	CommandGenerate Command = "generate"
	CommandVerify   Command = "verify"
	CommandModules  Command = "modules"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Command Command

	// TMC is a configuration given inline; ConfigFile names a file holding
	// one. TMC wins when both are set.
	TMC        string
	ConfigFile string

	Settings

	Uncompiled   bool
	DirectOutput bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates a configuration.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Command == "" {
		cfg.Command = CommandGenerate
	}
	if strings.TrimSpace(cfg.ProjectName) == "" {
		return nil, &ConfigError{Message: "projectName must not be empty"}
	}
	if cfg.ModuleDir == "" || cfg.TemplateDir == "" {
		return nil, &ConfigError{Message: "moduleDir and templateDir must be set"}
	}
	if cfg.Command == CommandGenerate && (cfg.GeneratedDir == "" || cfg.OutputDir == "") {
		return nil, &ConfigError{Message: "generatedDir and outputDir must be set"}
	}
	return &cfg, nil
}
