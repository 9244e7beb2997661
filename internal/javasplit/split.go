package javasplit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/vk/taintgrid/internal/ctxlog"
)

// ErrNoDeclarations is returned when the source holds no top-level type.
var ErrNoDeclarations = errors.New("source contains no top-level type declaration")

// declarationTypes are the grammar node types of top-level Java types.
var declarationTypes = map[string]bool{
	"class_declaration":           true,
	"interface_declaration":       true,
	"enum_declaration":            true,
	"record_declaration":          true,
	"annotation_type_declaration": true,
}

// Unit is one compilation unit of the generated application.
type Unit struct {
	ClassName string
	Content   string
}

// Split parses src and returns one unit per top-level type declaration, in
// source order. Every unit starts with `package <pkg>;`, followed by the text
// preceding the first declaration (imports, comments) and then the
// declaration text verbatim. A package declaration of src is replaced.
func Split(ctx context.Context, src, pkg string) ([]Unit, error) {
	logger := ctxlog.FromContext(ctx)
	source := []byte(src)

	parser := sitter.NewParser()
	parser.SetLanguage(java.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse java source: %w", err)
	}
	root := tree.RootNode()
	if root.HasError() {
		// The generated project will not compile, but splitting still works
		// on the parts the grammar recognised.
		logger.Warn("Generated java source has syntax errors.")
	}

	var (
		packages []*sitter.Node
		decls    []*sitter.Node
	)
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		switch {
		case child.Type() == "package_declaration":
			packages = append(packages, child)
		case declarationTypes[child.Type()]:
			decls = append(decls, child)
		}
	}
	if len(decls) == 0 {
		return nil, ErrNoDeclarations
	}

	header := Header(pkg, preamble(source, decls[0].StartByte(), packages))
	units := make([]Unit, 0, len(decls))
	for _, decl := range decls {
		name := decl.ChildByFieldName("name")
		if name == nil {
			return nil, fmt.Errorf("declaration at line %d has no name", decl.StartPoint().Row+1)
		}
		units = append(units, Unit{
			ClassName: name.Content(source),
			Content:   header + decl.Content(source) + "\n",
		})
		logger.Debug("Split compilation unit.", "class", name.Content(source))
	}
	return units, nil
}

// preamble returns the text before end with the package declarations cut
// out.
func preamble(source []byte, end uint32, packages []*sitter.Node) string {
	var b strings.Builder
	start := uint32(0)
	for _, p := range packages {
		if p.StartByte() >= end {
			break
		}
		b.Write(source[start:p.StartByte()])
		start = p.EndByte()
	}
	if start < end {
		b.Write(source[start:end])
	}
	return strings.TrimSpace(b.String())
}

// Header returns the text every unit starts with.
func Header(pkg, preamble string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "package %s;\n\n", pkg)
	if preamble != "" {
		b.WriteString(preamble)
		b.WriteString("\n\n")
	}
	return b.String()
}
