package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Settings file and environment names.
const (
	SettingsName = "taintgrid"
	EnvPrefix    = "TAINTGRID"
)

// Setting keys. They double as keys of the settings file.
const (
	KeyProjectName   = "projectName"
	KeyModuleDir     = "moduleDir"
	KeyTemplateDir   = "templateDir"
	KeyGeneratedDir  = "generatedDir"
	KeyOutputDir     = "outputDir"
	KeyAndroidSDKDir = "androidSdkDir"
	KeyForbidden     = "forbidden"
)

// Settings are the persistent, per-installation options of the generator.
type Settings struct {
	ProjectName   string   `mapstructure:"projectName"`
	ModuleDir     string   `mapstructure:"moduleDir"`
	TemplateDir   string   `mapstructure:"templateDir"`
	GeneratedDir  string   `mapstructure:"generatedDir"`
	OutputDir     string   `mapstructure:"outputDir"`
	AndroidSDKDir string   `mapstructure:"androidSdkDir"`
	Forbidden     []string `mapstructure:"forbidden"`
}

// NewSettings returns a viper instance with defaults and environment
// overrides (TAINTGRID_PROJECTNAME, ...) in place. Callers may bind flags to
// it before calling LoadSettings.
func NewSettings() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyProjectName, "com.example.benchmark")
	v.SetDefault(KeyModuleDir, "library/modules")
	v.SetDefault(KeyTemplateDir, "library/templates")
	v.SetDefault(KeyGeneratedDir, "generated")
	v.SetDefault(KeyOutputDir, "output")
	v.SetDefault(KeyAndroidSDKDir, "")
	v.SetDefault(KeyForbidden, []string{})

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadSettings reads the settings file into v and decodes the result. An
// explicit file must exist; without one, taintgrid.yaml is looked up in the
// working directory and its absence is not an error.
func LoadSettings(v *viper.Viper, file string) (*Settings, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(SettingsName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, &ConfigError{Message: "failed to read settings", Err: err}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, &ConfigError{Message: "failed to decode settings", Err: err}
	}
	return &s, nil
}

// ConfigError reports unusable configuration. It is always fatal and always
// raised before any tree is built.
type ConfigError struct {
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
