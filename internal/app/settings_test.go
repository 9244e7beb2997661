package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/taintgrid/internal/testutil"
)

func TestLoadSettings_FileOverridesDefaults(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := testutil.WriteFiles(t, map[string]string{
		"taintgrid.yaml": "projectName: org.bench.app\nforbidden:\n  - LogSink\n",
	})
	v := NewSettings()

	// --- Act ---
	s, err := LoadSettings(v, filepath.Join(root, "taintgrid.yaml"))

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "org.bench.app", s.ProjectName)
	assert.Equal(t, []string{"LogSink"}, s.Forbidden)
	assert.Equal(t, "library/modules", s.ModuleDir, "unset keys keep their default")
	assert.Equal(t, "output", s.OutputDir)
}

func TestLoadSettings_ExplicitFileMustExist(t *testing.T) {
	t.Parallel()

	_, err := LoadSettings(NewSettings(), filepath.Join(t.TempDir(), "missing.yaml"))

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestLoadSettings_OverriddenValueWins(t *testing.T) {
	t.Parallel()

	v := NewSettings()
	v.Set(KeyGeneratedDir, "/tmp/android")

	s, err := LoadSettings(v, "")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/android", s.GeneratedDir)
}
