package tmc

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vk/taintgrid/internal/model"
)

// Verifier decides whether a configuration, with module numbers removed, is
// acceptable. Grammar-based verifiers plug in here.
type Verifier interface {
	Verify(config string) error
}

// Catalog is the part of the module store a LibraryVerifier needs.
type Catalog interface {
	HasModule(name string) bool
	HasTemplate(name string) bool
}

// LibraryVerifier accepts configurations whose template and modules exist in
// the catalog, whose grouping is balanced and which use no forbidden module.
type LibraryVerifier struct {
	Catalog   Catalog
	Forbidden []string
}

// Verify implements Verifier.
func (v *LibraryVerifier) Verify(config string) error {
	tokens := Tokenize(config)
	template, modules := Split(tokens)
	if template == "" {
		return fmt.Errorf("configuration is empty")
	}
	if IsGrouping(template) || !v.Catalog.HasTemplate(template) {
		return fmt.Errorf("unknown template %q", template)
	}

	var problems []string
	for _, tok := range modules {
		if IsGrouping(tok) {
			continue
		}
		name := ParseReference(tok).Name
		if name == model.EmptyModule {
			continue
		}
		if slices.Contains(v.Forbidden, name) {
			problems = append(problems, fmt.Sprintf("module %q is forbidden", name))
			continue
		}
		if !v.Catalog.HasModule(name) {
			problems = append(problems, fmt.Sprintf("unknown module %q", name))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%s", strings.Join(problems, "; "))
	}

	if _, err := Build(modules); err != nil {
		return err
	}
	return nil
}
