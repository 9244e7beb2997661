package integration_tests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/taintgrid/internal/app"
	"github.com/vk/taintgrid/internal/output"
	"github.com/vk/taintgrid/internal/testutil"
	"github.com/vk/taintgrid/internal/testutil/apptest"
	"gopkg.in/yaml.v3"
)

const (
	locationHCL = `
module "LocationSource" {
  type    = "SOURCE"
  pattern = "OUT"
  imports = ["import android.location.LocationManager;"]
  module  = [
    "LocationManager §lm$ = (LocationManager) getSystemService(LOCATION_SERVICE);",
    "String sensitiveData_₹ = String.valueOf(§lm$.getLastKnownLocation(\"gps\").getLatitude());",
    "{{ module }}",
  ]

  flow {
    statement_signature = "$r4 = virtualinvoke $r3.<android.location.LocationManager: android.location.Location getLastKnownLocation(java.lang.String)>(\"gps\")"
    class_name          = "MainActivity"
    method_signature    = "void onCreate(android.os.Bundle)"
  }
}
`
	helperHCL = `
module "HelperClass" {
  type    = "NEUTRAL"
  module  = ["new §Helper$().run();", "{{ module }}"]
  classes = ["class §Helper$ {", "void run() {", "}", "}"]
  views   = ["<TextView android:id=\"@+id/§label$\"/>"]
}
`
)

func library(extra map[string]string) map[string]string {
	files := testutil.Library()
	for k, v := range extra {
		files[k] = v
	}
	return files
}

func readReport(t *testing.T, result *apptest.HarnessResult) *output.Report {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join(result.CaseDir, output.CaseReport))
	require.NoError(t, err)
	var report output.Report
	require.NoError(t, yaml.Unmarshal(raw, &report))
	return &report
}

// TestComposition_IndependentFlowsUnderStructuralRoot checks that several
// top-level modules each carry their own flow.
func TestComposition_IndependentFlowsUnderStructuralRoot(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := library(map[string]string{"library/modules/sources/location.hcl": locationHCL})
	cfg := app.Config{TMC: "Basic ImeiSource1 ( LogSink1 ) LocationSource2 ( LogSink2 )"}

	// --- Act ---
	result := apptest.RunIntegrationTest(t, files, cfg)

	// --- Assert ---
	require.NoError(t, result.Err, "logs:\n%s", result.LogOutput)
	report := readReport(t, result)
	assert.Equal(t, 2, report.Flows)
	assert.Equal(t, "Basic", report.Template)
	require.Len(t, report.Nodes, 4)

	passed := map[string]string{}
	for _, n := range report.Nodes {
		passed[n.Module] = n.Passed
	}
	assert.NotEqual(t, passed["LogSink1"], passed["LogSink2"], "each sink reads its own source")
	assert.NotContains(t, result.LogOutput, "without upstream producer")
}

// TestComposition_UnboundSinkDegradesWithWarning checks that a sink whose
// number has no producer still renders but yields no flow.
func TestComposition_UnboundSinkDegradesWithWarning(t *testing.T) {
	t.Parallel()

	result := apptest.RunIntegrationTest(t, testutil.Library(), app.Config{TMC: "Basic ImeiSource1 ( LogSink2 )"})

	require.NoError(t, result.Err)
	assert.Contains(t, result.LogOutput, "without upstream producer")
	report := readReport(t, result)
	assert.Zero(t, report.Flows)
	for _, n := range report.Nodes {
		if n.Module == "LogSink2" {
			assert.Equal(t, "undefined", n.Passed)
		}
	}
}

// TestComposition_EmptyModuleForwardsItsChildren checks the reserved empty
// module: no definition, no code, children still rendered and connected.
func TestComposition_EmptyModuleForwardsItsChildren(t *testing.T) {
	t.Parallel()

	result := apptest.RunIntegrationTest(t, testutil.Library(), app.Config{TMC: "Basic ImeiSource1 ( empty ( IfWrapper ( LogSink1 ) ) )"})

	require.NoError(t, result.Err, "logs:\n%s", result.LogOutput)
	assert.Equal(t, 1, readReport(t, result).Flows)

	java, err := os.ReadFile(result.Path("generated/app/src/main/java/com/example/bench/MainActivity.java"))
	require.NoError(t, err)
	assert.Contains(t, string(java), "if (")
	assert.Contains(t, string(java), "Log.d(")
}

// TestComposition_RepeatedModulesGetOwnClasses checks that every instance of
// a module declaring a class gets a compilation unit of its own.
func TestComposition_RepeatedModulesGetOwnClasses(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := library(map[string]string{"library/modules/neutral/helper.hcl": helperHCL})
	cfg := app.Config{TMC: "Basic HelperClass ( HelperClass ( HelperClass ) )"}

	// --- Act ---
	result := apptest.RunIntegrationTest(t, files, cfg)

	// --- Assert ---
	require.NoError(t, result.Err, "logs:\n%s", result.LogOutput)
	report := readReport(t, result)
	require.Len(t, report.Units, 4, "MainActivity plus one helper per instance")

	seen := map[string]bool{}
	for _, unit := range report.Units {
		assert.False(t, seen[unit], "unit %s generated twice", unit)
		seen[unit] = true
		assert.FileExists(t, result.Path("generated/app/src/main/java/com/example/bench/"+unit+".java"))
	}

	layout, err := os.ReadFile(result.Path("generated/app/src/main/res/layout/activity.xml"))
	require.NoError(t, err)
	assert.NotContains(t, string(layout), "§")
	assert.NotContains(t, string(layout), "{{")
}
