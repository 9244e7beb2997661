package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vk/taintgrid/internal/ctxlog"
	"github.com/vk/taintgrid/internal/engine"
	"github.com/vk/taintgrid/internal/gradle"
	"github.com/vk/taintgrid/internal/library"
	"github.com/vk/taintgrid/internal/output"
	"github.com/vk/taintgrid/internal/tmc"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	library *library.Library
}

// NewApp is the constructor for the main application. It returns an App with
// its own isolated logger; nothing is read from disk until Run.
func NewApp(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")
	return &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		library: library.New(),
	}
}

// Library returns the application's module library. This is primarily for
// testing.
func (a *App) Library() *library.Library {
	return a.library
}

// Run executes the configured command.
func (a *App) Run(ctx context.Context) error {
	a.logger.Debug("App.Run method started.", "command", a.config.Command)

	switch a.config.Command {
	case CommandGenerate:
		_, err := a.Generate(ctx)
		return err
	case CommandVerify:
		return a.Verify(ctx)
	case CommandModules:
		return a.ListModules(ctx)
	default:
		return &ConfigError{Message: fmt.Sprintf("unknown command %q", a.config.Command)}
	}
}

// LoadLibrary reads every module and template definition. Duplicate names
// are fatal.
func (a *App) LoadLibrary(ctx context.Context) error {
	if err := a.library.Load(ctx, a.config.ModuleDir, a.config.TemplateDir); err != nil {
		return fmt.Errorf("failed to load library: %w", err)
	}
	return nil
}

// Generate composes, writes and optionally compiles one benchmark case and
// returns its directory.
func (a *App) Generate(ctx context.Context) (string, error) {
	runID := uuid.NewString()
	logger := a.logger.With("run_id", runID)
	ctx = ctxlog.WithLogger(ctx, logger)

	config, err := a.prepare(ctx)
	if err != nil {
		return "", err
	}

	start := time.Now()
	res, err := engine.New(a.library, a.config.ProjectName).Generate(ctx, config)
	if err != nil {
		return "", err
	}

	gen := &output.Generator{
		Dir:     a.config.GeneratedDir,
		Project: a.config.ProjectName,
		SDKDir:  a.config.AndroidSDKDir,
	}
	if err := gen.WriteSources(ctx, res); err != nil {
		return "", err
	}
	logger.Info("Source generation finished.", "duration", time.Since(start).Round(time.Millisecond))

	compiled := !a.config.Uncompiled
	if compiled {
		runner := &gradle.Runner{Dir: a.config.GeneratedDir, Output: a.outW}
		if err := runner.Build(ctx); err != nil {
			return "", err
		}
	}

	dir, err := gen.Finish(ctx, res, output.CaseOptions{
		OutputDir:  a.config.OutputDir,
		ConfigFile: a.config.ConfigFile,
		Direct:     a.config.DirectOutput,
		Compiled:   compiled,
		RunID:      runID,
		Now:        time.Now(),
	})
	if err != nil {
		return "", err
	}
	logger.Info("Benchmark case has been successfully generated.", "dir", dir)
	return dir, nil
}

// Verify checks the configuration against the library without generating
// anything.
func (a *App) Verify(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	config, err := a.prepare(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.outW, "configuration is valid: %s\n", config)
	return nil
}

// ListModules prints the templates and modules of the library.
func (a *App) ListModules(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	if err := a.LoadLibrary(ctx); err != nil {
		return err
	}
	for _, name := range a.library.TemplateNames() {
		fmt.Fprintf(a.outW, "template  %s\n", name)
	}
	for _, name := range a.library.ModuleNames() {
		def, err := a.library.Module(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.outW, "module    %-30s %-8s %-4s flows=%d\n", name, def.Type, def.Pattern, len(def.Flows))
	}
	return nil
}

// prepare loads the library and returns the verified configuration.
func (a *App) prepare(ctx context.Context) (string, error) {
	logger := ctxlog.FromContext(ctx)

	config, err := a.resolveTMC()
	if err != nil {
		return "", err
	}
	if err := a.LoadLibrary(ctx); err != nil {
		return "", err
	}

	tokens := tmc.Tokenize(config)
	verifier := &tmc.LibraryVerifier{Catalog: a.library, Forbidden: a.config.Forbidden}
	if err := verifier.Verify(tmc.StripNumbers(tokens)); err != nil {
		return "", &ConfigError{Message: "invalid template/module configuration (TMC) provided", Err: err}
	}

	_, modules := tmc.Split(tokens)
	counts, total := tmc.CountModules(modules)
	logger.Info("Configuration verified.", "config", config, "modules", total)
	logger.Debug("Module count description.", "counts", counts)
	return config, nil
}

// resolveTMC returns the normalized configuration from the inline value or
// the configuration file.
func (a *App) resolveTMC() (string, error) {
	config := a.config.TMC
	if strings.TrimSpace(config) == "" && a.config.ConfigFile != "" {
		b, err := os.ReadFile(a.config.ConfigFile)
		if err != nil {
			return "", &ConfigError{Message: "failed to read configuration file", Err: err}
		}
		config = string(b)
	}
	config = tmc.Normalize(config)
	if config == "" {
		return "", &ConfigError{Message: "a template/module configuration must be provided"}
	}
	return config, nil
}
