package integration_tests

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"github.com/vk/taintgrid/internal/app"
	"github.com/vk/taintgrid/internal/cli"
	"github.com/vk/taintgrid/internal/testutil"
)

func TestParse(t *testing.T) {
	t.Parallel()

	settingsDir := testutil.WriteFiles(t, map[string]string{
		"taintgrid.yaml": "projectName: org.bench\nmoduleDir: /lib/modules\ntemplateDir: /lib/templates\nandroidSdkDir: /opt/android\n",
	})
	settingsFile := filepath.Join(settingsDir, "taintgrid.yaml")

	defaults := app.Settings{
		ProjectName:  "com.example.benchmark",
		ModuleDir:    "library/modules",
		TemplateDir:  "library/templates",
		GeneratedDir: "generated",
		OutputDir:    "output",
	}

	testCases := []struct {
		name           string
		args           []string
		expectExit     bool
		expectErr      bool
		expectedConfig *app.Config
	}{
		{
			name: "Happy Path with all flags",
			args: []string{
				"generate",
				"-c", "Basic ImeiSource1 ( LogSink1 )",
				"--project=org.example",
				"--modules=/m",
				"--templates=/t",
				"--generated=/g",
				"--output=/o",
				"--sdk=/sdk",
				"--forbid=LogSink,SmsSink",
				"--uncompiled",
				"--direct-output",
				"--log-level=debug",
				"--log-format=json",
			},
			expectedConfig: &app.Config{
				Command: app.CommandGenerate,
				TMC:     "Basic ImeiSource1 ( LogSink1 )",
				Settings: app.Settings{
					ProjectName:   "org.example",
					ModuleDir:     "/m",
					TemplateDir:   "/t",
					GeneratedDir:  "/g",
					OutputDir:     "/o",
					AndroidSDKDir: "/sdk",
					Forbidden:     []string{"LogSink", "SmsSink"},
				},
				Uncompiled:   true,
				DirectOutput: true,
				LogLevel:     "debug",
				LogFormat:    "json",
			},
		},
		{
			name: "Shorthand flag and defaults",
			args: []string{"-f", "cases/a.txt"},
			expectedConfig: &app.Config{
				Command:    app.CommandGenerate,
				ConfigFile: "cases/a.txt",
				Settings:   defaults,
				LogLevel:   "info",
				LogFormat:  "text",
			},
		},
		{
			name: "Settings file below flags",
			args: []string{"verify", "--settings", settingsFile, "--project", "org.flag", "Basic", "ImeiSource1"},
			expectedConfig: &app.Config{
				Command: app.CommandVerify,
				TMC:     "Basic ImeiSource1",
				Settings: app.Settings{
					ProjectName:   "org.flag",
					ModuleDir:     "/lib/modules",
					TemplateDir:   "/lib/templates",
					GeneratedDir:  "generated",
					OutputDir:     "output",
					AndroidSDKDir: "/opt/android",
				},
				LogLevel:  "info",
				LogFormat: "text",
			},
		},
		{
			name:       "Help flag triggers clean exit",
			args:       []string{"--help"},
			expectExit: true,
		},
		{
			name:      "Invalid log level",
			args:      []string{"-c", "Basic A1", "--log-level=verbose"},
			expectErr: true,
		},
		{
			name:      "Uncompiled is not a verify flag",
			args:      []string{"verify", "--uncompiled", "Basic"},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer

			cfg, shouldExit, err := cli.Parse(tc.args, &out)

			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expectExit, shouldExit)
			if tc.expectExit {
				require.Contains(t, out.String(), "Usage:")
				return
			}
			if diff := cmp.Diff(tc.expectedConfig, cfg, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
