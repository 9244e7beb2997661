package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/taintgrid/internal/app"
	"github.com/vk/taintgrid/internal/testutil"
)

func TestParse_GenerateIsTheDefaultCommand(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out := &bytes.Buffer{}
	args := []string{"-c", "Basic ImeiSource1 ( LogSink1 )", "--uncompiled", "--project", "org.bench"}

	// --- Act ---
	cfg, shouldExit, err := Parse(args, out)

	// --- Assert ---
	require.NoError(t, err)
	assert.False(t, shouldExit)
	require.NotNil(t, cfg)
	assert.Equal(t, app.CommandGenerate, cfg.Command)
	assert.Equal(t, "Basic ImeiSource1 ( LogSink1 )", cfg.TMC)
	assert.True(t, cfg.Uncompiled)
	assert.Equal(t, "org.bench", cfg.ProjectName)
	assert.Equal(t, "library/modules", cfg.ModuleDir)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParse_PositionalArgumentsFormTheConfiguration(t *testing.T) {
	t.Parallel()

	cfg, _, err := Parse([]string{"verify", "Basic", "ImeiSource1", "(", "LogSink1", ")"}, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Equal(t, app.CommandVerify, cfg.Command)
	assert.Equal(t, "Basic ImeiSource1 ( LogSink1 )", cfg.TMC)
}

func TestParse_SettingsFileAndFlagPrecedence(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := testutil.WriteFiles(t, map[string]string{
		"settings.yaml": "projectName: from.file\noutputDir: /cases\nforbidden: [LogSink]\n",
	})
	args := []string{
		"generate",
		"--settings", filepath.Join(root, "settings.yaml"),
		"--output", "/elsewhere",
		"-f", "case.txt",
	}

	// --- Act ---
	cfg, _, err := Parse(args, &bytes.Buffer{})

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "from.file", cfg.ProjectName)
	assert.Equal(t, "/elsewhere", cfg.OutputDir, "flags override the settings file")
	assert.Equal(t, []string{"LogSink"}, cfg.Forbidden)
	assert.Equal(t, "case.txt", cfg.ConfigFile)
}

func TestParse_ModulesNeedsNoConfiguration(t *testing.T) {
	t.Parallel()

	cfg, shouldExit, err := Parse([]string{"modules", "--modules", "lib/m"}, &bytes.Buffer{})

	require.NoError(t, err)
	assert.False(t, shouldExit)
	assert.Equal(t, app.CommandModules, cfg.Command)
	assert.Equal(t, "lib/m", cfg.ModuleDir)
}

func TestParse_HelpAndMissingConfigurationExit(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{{"-h"}, {}, {"verify"}} {
		out := &bytes.Buffer{}

		cfg, shouldExit, err := Parse(args, out)

		require.NoError(t, err, "args %v", args)
		assert.True(t, shouldExit, "args %v", args)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	}
}

func TestParse_InvalidInput(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		args []string
		want string
	}{
		{name: "unknown flag", args: []string{"--no-such-flag"}, want: "unknown flag"},
		{name: "log format", args: []string{"-c", "Basic A1", "--log-format", "xml"}, want: "invalid log-format"},
		{name: "log level", args: []string{"-c", "Basic A1", "--log-level", "loud"}, want: "invalid log-level"},
		{name: "empty project", args: []string{"-c", "Basic A1", "--project", " "}, want: "projectName"},
		{name: "missing settings", args: []string{"-c", "Basic A1", "--settings", "/does/not/exist.yaml"}, want: "failed to read settings"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := Parse(tc.args, &bytes.Buffer{})

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.want)
		})
	}
}
