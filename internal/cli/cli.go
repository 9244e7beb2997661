package cli

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/vk/taintgrid/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// options collects the flags that are not settings.
type options struct {
	settingsFile string
	logLevel     string
	logFormat    string
	tmc          string
	configFile   string
	uncompiled   bool
	direct       bool
}

// settingFlags maps setting keys to the flags overriding them.
var settingFlags = map[string]string{
	app.KeyProjectName:   "project",
	app.KeyModuleDir:     "modules",
	app.KeyTemplateDir:   "templates",
	app.KeyGeneratedDir:  "generated",
	app.KeyOutputDir:     "output",
	app.KeyAndroidSDKDir: "sdk",
	app.KeyForbidden:     "forbid",
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var parsed *app.Config
	opts := &options{}
	v := app.NewSettings()
	accept := func(cfg *app.Config) { parsed = cfg }

	root := newRootCommand(opts, v, accept)
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(output)
	root.SetErr(output)

	if err := root.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return nil, false, exitErr
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if parsed == nil {
		// Help was printed or there was nothing to do.
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "command", parsed.Command)
	return parsed, false, nil
}

func newRootCommand(opts *options, v *viper.Viper, accept func(*app.Config)) *cobra.Command {
	root := &cobra.Command{
		Use:   "taintgrid [TMC]",
		Short: "Generate Android taint-analysis benchmark cases",
		Long: `taintgrid composes Android applications with known data flows from a
library of code modules and records the flows as ground truth.

A template/module configuration (TMC) names a template followed by a tree
of numbered modules, for example:

  taintgrid -c "Basic ImeiSource1 ( IfWrapper ( LogSink1 ) )"

Without a subcommand taintgrid generates a case.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE:          runner(app.CommandGenerate, opts, v, accept),
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.settingsFile, "settings", "", "Path to a settings file (default ./"+app.SettingsName+".yaml when present).")
	pf.StringVar(&opts.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	pf.StringVar(&opts.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.String("project", "", "Java package of the generated application.")
	pf.String("modules", "", "Directory containing module definitions.")
	pf.String("templates", "", "Directory containing template definitions.")
	pf.StringSlice("forbid", nil, "Modules that may not appear in a configuration.")
	addGenerateFlags(root.Flags(), opts)

	generate := &cobra.Command{
		Use:   "generate [TMC]",
		Short: "Compose, build and collect one benchmark case",
		RunE:  runner(app.CommandGenerate, opts, v, accept),
	}
	addGenerateFlags(generate.Flags(), opts)

	verify := &cobra.Command{
		Use:   "verify [TMC]",
		Short: "Check a configuration against the module library",
		RunE:  runner(app.CommandVerify, opts, v, accept),
	}
	addTMCFlags(verify.Flags(), opts)

	modules := &cobra.Command{
		Use:   "modules",
		Short: "List the templates and modules of the library",
		Args:  cobra.NoArgs,
		RunE:  runner(app.CommandModules, opts, v, accept),
	}

	root.AddCommand(generate, verify, modules)
	return root
}

func addTMCFlags(fs *pflag.FlagSet, opts *options) {
	fs.StringVarP(&opts.tmc, "config", "c", "", "Template/module configuration given inline.")
	fs.StringVarP(&opts.configFile, "config-file", "f", "", "File holding a template/module configuration.")
}

func addGenerateFlags(fs *pflag.FlagSet, opts *options) {
	addTMCFlags(fs, opts)
	fs.BoolVar(&opts.uncompiled, "uncompiled", false, "Skip the Gradle build and collect sources only.")
	fs.BoolVar(&opts.direct, "direct-output", false, "Write the case into the output directory itself.")
	fs.String("output", "", "Directory receiving benchmark cases.")
	fs.String("generated", "", "Android project skeleton the sources are written into.")
	fs.String("sdk", "", "Android SDK directory written to local.properties.")
}

// runner returns the RunE of a command: it validates the flags, resolves the
// settings and hands the finished configuration to accept.
func runner(command app.Command, opts *options, v *viper.Viper, accept func(*app.Config)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		logFormat := strings.ToLower(opts.logFormat)
		if logFormat != "text" && logFormat != "json" {
			return &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
		}

		logLevel := strings.ToLower(opts.logLevel)
		switch logLevel {
		case "debug", "info", "warn", "error":
			// valid
		default:
			return &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
		}

		tmc := opts.tmc
		if tmc == "" && len(args) > 0 {
			tmc = strings.Join(args, " ")
		}
		if command != app.CommandModules && tmc == "" && opts.configFile == "" {
			slog.Debug("No configuration provided, printing usage and exiting.")
			return cmd.Help()
		}

		for key, name := range settingFlags {
			if f := cmd.Flags().Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return &ExitError{Code: 2, Message: err.Error()}
				}
			}
		}
		settings, err := app.LoadSettings(v, opts.settingsFile)
		if err != nil {
			return &ExitError{Code: 2, Message: err.Error()}
		}

		config, err := app.NewConfig(app.Config{
			Command:      command,
			TMC:          tmc,
			ConfigFile:   opts.configFile,
			Settings:     *settings,
			Uncompiled:   opts.uncompiled,
			DirectOutput: opts.direct,
			LogFormat:    logFormat,
			LogLevel:     logLevel,
		})
		if err != nil {
			return &ExitError{Code: 2, Message: err.Error()}
		}
		accept(config)
		return nil
	}
}
