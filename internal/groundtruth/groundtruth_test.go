package groundtruth

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/taintgrid/internal/flow"
	"github.com/vk/taintgrid/internal/model"
)

func TestInsertProject(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		statement string
		want      string
	}{
		{
			name:      "placeholder qualifies the class",
			statement: "$r1 = virtualinvoke $r0.<{{ project }}: java.lang.String id()>()",
			want:      "$r1 = virtualinvoke $r0.<demo.MainActivity: java.lang.String id()>()",
		},
		{
			name:      "framework statement is left alone",
			statement: "staticinvoke <android.util.Log: int d(java.lang.String,java.lang.String)>",
			want:      "staticinvoke <android.util.Log: int d(java.lang.String,java.lang.String)>",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, InsertProject(tc.statement, "demo", "MainActivity"))
		})
	}
}

func connection() flow.Connection {
	return flow.Connection{
		From: model.Flow{
			ID:                 0,
			StatementSignature: "$r1 = virtualinvoke $r0.<{{ project }}: java.lang.String id()>()",
			ClassName:          "MainActivity",
			MethodSignature:    "void onCreate(android.os.Bundle)",
		},
		To: model.Flow{
			ID:                 4,
			StatementSignature: "staticinvoke <android.util.Log: int d(java.lang.String,java.lang.String)>",
			ClassName:          "Helper3",
			MethodSignature:    "void run()",
			Leaking:            true,
			Reachable:          false,
		},
		Number: 1,
	}
}

func TestBuild_Marshal(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	app := Artifact{Path: "/out/generated-app.apk", MD5: "m", SHA1: "s1", SHA256: "s256"}
	lines := map[string]int{"0": 12}

	// --- Act ---
	out, err := Build("demo", []flow.Connection{connection()}, lines, app).Marshal()

	// --- Assert ---
	require.NoError(t, err)
	doc := string(out)
	assert.True(t, strings.HasPrefix(doc, Header+"<answer>\n  <flows>\n    <flow>\n"))
	for _, want := range []string{
		`      <reference type="from">`,
		`          <statementfull></statementfull>`,
		`          <statementgeneric>$r1 = virtualinvoke $r0.&lt;demo.MainActivity: java.lang.String id()&gt;()</statementgeneric>`,
		`          <linenumber>12</linenumber>`,
		`        <method>&lt;demo.MainActivity: void onCreate(android.os.Bundle)&gt;</method>`,
		`        <classname>demo.MainActivity</classname>`,
		`          <file>/out/generated-app.apk</file>`,
		`            <hash type="SHA-256">s256</hash>`,
		`      <reference type="to">`,
		`          <linenumber>0</linenumber>`,
		`        <classname>demo.Helper3</classname>`,
		"          <name>leaking</name>\n          <value>true</value>",
		"          <name>reachable</name>\n          <value>false</value>",
	} {
		assert.Contains(t, doc, want)
	}

	again, err := Build("demo", []flow.Connection{connection()}, lines, app).Marshal()
	require.NoError(t, err)
	assert.Equal(t, out, again, "output must be reproducible")
}

func TestBuild_NoFlows(t *testing.T) {
	t.Parallel()

	out, err := Build("demo", nil, nil, Artifact{}).Marshal()

	require.NoError(t, err)
	assert.Equal(t, Header+"<answer>\n  <flows></flows>\n</answer>\n", string(out))
}

func TestHashFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "app.apk")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))

	// --- Act ---
	a, err := HashFile(path)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "900150983cd24fb0d6963f7d28e17f72", a.MD5)
	assert.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d", a.SHA1)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", a.SHA256)
	assert.True(t, strings.HasSuffix(a.Path, "/app.apk"))
}
