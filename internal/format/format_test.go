package format

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJava_ReindentsByBraceDepth(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	src := "\n\npublic class A {\nvoid m() {\n      if (x) { y(); }\n\n\n\n}\n  }\n\n"
	want := "public class A {\n  void m() {\n    if (x) { y(); }\n\n  }\n}\n"

	// --- Act ---
	got := Java(src)

	// --- Assert ---
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Java() mismatch (-want +got):\n%s", diff)
	}
}

func TestJava_IgnoresBracesInLiteralsAndComments(t *testing.T) {
	t.Parallel()

	src := "class A {\nString s = \"{\";\nchar c = '}';\n// {\n/* {\n * }\n*/\nint x;\n}"
	want := "class A {\n  String s = \"{\";\n  char c = '}';\n  // {\n  /* {\n   * }\n   */\n  int x;\n}\n"

	assert.Equal(t, want, Java(src))
}

func TestJava_ElseOnClosingLine(t *testing.T) {
	t.Parallel()

	src := "void m() {\nif (a) {\nb();\n} else {\nc();\n}\n}"
	want := "void m() {\n  if (a) {\n    b();\n  } else {\n    c();\n  }\n}\n"

	assert.Equal(t, want, Java(src))
}

func TestJava_IsStable(t *testing.T) {
	t.Parallel()

	once := Java("class A {\nvoid m() {\nx();\n}\n}")

	assert.Equal(t, once, Java(once))
}

func TestXML_IndentsAndKeepsPrefixes(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	src := `<?xml version="1.0" encoding="utf-8"?>
<manifest xmlns:android="http://schemas.android.com/apk/res/android" package="demo">
<uses-permission android:name="android.permission.READ_PHONE_STATE"/>


<application android:label="Demo"><activity android:name=".MainActivity"></activity>
<meta-data android:name="k">v</meta-data></application>
</manifest>`
	want := `<?xml version="1.0" encoding="utf-8"?>
<manifest xmlns:android="http://schemas.android.com/apk/res/android" package="demo">
  <uses-permission android:name="android.permission.READ_PHONE_STATE" />
  <application android:label="Demo">
    <activity android:name=".MainActivity" />
    <meta-data android:name="k">v</meta-data>
  </application>
</manifest>
`

	// --- Act ---
	got, err := XML(src)

	// --- Assert ---
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("XML() mismatch (-want +got):\n%s", diff)
	}
}

func TestXML_Empty(t *testing.T) {
	t.Parallel()

	got, err := XML("  \n")

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestXML_Malformed(t *testing.T) {
	t.Parallel()

	_, err := XML("<a>\n<b></a>")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected </a> on line 2")
}

func TestXML_Unclosed(t *testing.T) {
	t.Parallel()

	_, err := XML("<a><b></b>")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "<a> is never closed")
}
