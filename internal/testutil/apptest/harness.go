// Package apptest runs the whole application against a module library laid
// out in a temporary directory.
package apptest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/taintgrid/internal/app"
	"github.com/vk/taintgrid/internal/testutil"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
	// Root is the temporary directory holding the library and all output.
	Root string
	// CaseDir is the collected benchmark case, empty on failure.
	CaseDir string
}

// Path resolves a slash-separated path below Root.
func (r *HarnessResult) Path(rel string) string {
	return filepath.Join(r.Root, filepath.FromSlash(rel))
}

// RunIntegrationTest provides a standardized harness for running integration
// tests using a default background context.
func RunIntegrationTest(t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, cfg)
}

// RunIntegrationTestWithContext writes files below a temporary root, points
// every directory setting left empty in cfg into it and runs the configured
// command. Generation is always uncompiled.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()

	root := testutil.WriteFiles(t, files)
	if cfg.ProjectName == "" {
		cfg.ProjectName = "com.example.bench"
	}
	dirs := []struct {
		field *string
		def   string
	}{
		{&cfg.ModuleDir, "library/modules"},
		{&cfg.TemplateDir, "library/templates"},
		{&cfg.GeneratedDir, "generated"},
		{&cfg.OutputDir, "output"},
		{&cfg.ConfigFile, ""},
	}
	for _, d := range dirs {
		if *d.field == "" {
			*d.field = d.def
		}
		if *d.field != "" && !filepath.IsAbs(*d.field) {
			*d.field = filepath.Join(root, filepath.FromSlash(*d.field))
		}
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	cfg.Uncompiled = true

	valid, err := app.NewConfig(cfg)
	require.NoError(t, err)

	logBuffer := &testutil.SafeBuffer{}
	testApp := app.NewApp(logBuffer, valid)

	result := &HarnessResult{App: testApp, Root: root}
	if valid.Command == app.CommandGenerate {
		result.CaseDir, result.Err = testApp.Generate(ctx)
	} else {
		result.Err = testApp.Run(ctx)
	}
	result.LogOutput = logBuffer.String()
	return result
}
