package render

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/taintgrid/internal/javasplit"
	"github.com/vk/taintgrid/internal/model"
	"github.com/vk/taintgrid/internal/placeholder"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func basicTemplate() *model.Template {
	return &model.Template{
		Name: "Basic",
		Source: []string{
			"{{ imports }}",
			"public class MainActivity {",
			"{{ globals }}",
			"void onCreate() {",
			"{{ module }}",
			"}",
			"{{ methods }}",
			"}",
			"{{ classes }}",
		},
		Manifest: []string{
			"<manifest package={{ project }}>",
			"{{ permissions }}",
			"<application>{{ components }}</application>",
			"</manifest>",
		},
		Layout: []string{"<LinearLayout>", "{{ views }}", "</LinearLayout>"},
	}
}

func TestSubstitute_IsLazy(t *testing.T) {
	t.Parallel()

	got := Substitute("{{ a }} {{b}} {{ module_0_1 }}", placeholder.Values{"a": "x {{ b }}"})

	assert.Equal(t, "x {{ b }} {{b}} {{ module_0_1 }}", got)
}

func TestSubstitute_QualifiedKeysAreDistinct(t *testing.T) {
	t.Parallel()

	got := Substitute("{{ module }}|{{ module_1_11 }}|{{ module_11_1 }}", placeholder.Values{
		"module_11_1": "B",
	})

	assert.Equal(t, "{{ module }}|{{ module_1_11 }}|B", got)
}

func TestStrip(t *testing.T) {
	t.Parallel()

	got := Strip("a {{ module_0_0 }}b{{views}}")

	assert.Equal(t, "a b", got)
	assert.False(t, HasPlaceholders(got))
}

func TestComposer_InsertRoutesValuesPerDocument(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tpl := basicTemplate()
	tpl.Manifest = append(tpl.Manifest, "<!-- {{ views }} -->")
	c := New(tpl, "demo")

	// --- Act ---
	err := c.Insert(context.Background(), placeholder.Values{
		"views":       "<TextView/>",
		"permissions": "<uses-permission name=\"x\"/>\n{{ permissions }}",
	})

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, c.Manifest(), `<manifest package="demo">`)
	assert.Contains(t, c.Manifest(), "<!-- {{ views }} -->", "the manifest pass must not see layout values")
	assert.Contains(t, c.Manifest(), "<uses-permission name=\"x\"/>\n{{ permissions }}")
	assert.Contains(t, c.Layout(), "<TextView/>")
	assert.Contains(t, c.Source(), "{{ module }}", "values without a source category leave the source untouched")
	assert.NotContains(t, c.Source(), "<TextView/>")
}

func TestComposer_Finish(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx := context.Background()
	c := New(basicTemplate(), "demo")
	require.NoError(t, c.Insert(ctx, placeholder.Values{
		"imports":     "import a.B;\n{{ imports }}",
		"module":      "b();\n{{ module }}",
		"permissions": "<uses-permission name=\"x\"/>\n{{ permissions }}",
		"views":       "<TextView/>",
		"project":     "demo",
	}))

	// --- Act ---
	res, err := c.Finish(ctx)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "<manifest package=\"demo\">\n  <uses-permission name=\"x\" />\n  <application />\n</manifest>\n", res.Manifest)
	assert.Equal(t, "<LinearLayout>\n  <TextView />\n</LinearLayout>\n", res.Layout)

	want := []javasplit.Unit{{
		ClassName: "MainActivity",
		Content: "package demo;\n\nimport a.B;\n\n" +
			"public class MainActivity {\n\n  void onCreate() {\n    b();\n\n  }\n\n}\n",
	}}
	if diff := cmp.Diff(want, res.Units); diff != "" {
		t.Errorf("units mismatch (-want +got):\n%s", diff)
	}
}

func TestComposer_InsertHonoursCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := New(basicTemplate(), "demo")

	err := c.Insert(ctx, placeholder.Values{"module": "x();"})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestLineLookup(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	units := []javasplit.Unit{
		{ClassName: "A", Content: "1\n2\n3\n4\n5\n6\n7\nx(); // statementId: 42\n}"},
		{ClassName: "B", Content: "class B {\n  y(); // statementId: 5\n  z(); // statementId: 6\n}\n"},
	}

	// --- Act ---
	lookup := LineLookup(units)

	// --- Assert ---
	assert.Equal(t, map[string]int{"42": 8, "5": 2, "6": 3}, lookup)
}
