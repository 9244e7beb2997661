package library

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/taintgrid/internal/ctxlog"
	"github.com/vk/taintgrid/internal/fsutil"
	"github.com/vk/taintgrid/internal/model"
)

const (
	kindModule   = "module"
	kindTemplate = "template"
)

// Library holds every module and template definition of a module store.
type Library struct {
	modules   map[string]*model.Definition
	templates map[string]*model.Template
}

// New creates an empty library.
func New() *Library {
	return &Library{
		modules:   make(map[string]*model.Definition),
		templates: make(map[string]*model.Template),
	}
}

// Load parses every .hcl and .json file below the given paths. Paths that do
// not exist are skipped. Definitions sharing a name are reported together as
// a DuplicateError once every file has been read.
func (l *Library) Load(ctx context.Context, paths ...string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Library loading definitions.", "paths", paths)

	var files []string
	seen := make(map[string]struct{})
	for _, path := range paths {
		if !fsutil.Exists(path) {
			logger.Warn("Library path does not exist, skipping.", "path", path)
			continue
		}
		found, err := fsutil.FindFilesByExtension(path, ".hcl", ".json")
		if err != nil {
			return fmt.Errorf("failed to walk library path %s: %w", path, err)
		}
		for _, f := range found {
			if _, ok := seen[f]; !ok {
				seen[f] = struct{}{}
				files = append(files, f)
			}
		}
	}
	logger.Debug("Found library files.", "count", len(files))

	parser := hclparse.NewParser()
	moduleOrigins := make(map[string][]string)
	templateOrigins := make(map[string][]string)

	for _, file := range files {
		root, err := parseFile(parser, file)
		if err != nil {
			return err
		}

		for _, block := range root.Modules {
			def, diags := decodeModule(block, file)
			if diags.HasErrors() {
				return fmt.Errorf("failed to decode module %q in %s: %w", block.Name, file, diags)
			}
			moduleOrigins[def.Name] = append(moduleOrigins[def.Name], file)
			l.modules[def.Name] = def
		}
		for _, block := range root.Templates {
			tpl, diags := decodeTemplate(block, file)
			if diags.HasErrors() {
				return fmt.Errorf("failed to decode template %q in %s: %w", block.Name, file, diags)
			}
			templateOrigins[tpl.Name] = append(templateOrigins[tpl.Name], file)
			l.templates[tpl.Name] = tpl
		}
	}

	if dups := duplicates(moduleOrigins); len(dups) > 0 {
		return &DuplicateError{Kind: kindModule, Names: dups}
	}
	if dups := duplicates(templateOrigins); len(dups) > 0 {
		return &DuplicateError{Kind: kindTemplate, Names: dups}
	}

	logger.Info("Library loaded.", "modules", len(l.modules), "templates", len(l.templates))
	return nil
}

func parseFile(parser *hclparse.Parser, file string) (*fileRoot, error) {
	var (
		hclFile *hcl.File
		diags   hcl.Diagnostics
	)
	if filepath.Ext(file) == ".json" {
		hclFile, diags = parser.ParseJSONFile(file)
	} else {
		hclFile, diags = parser.ParseHCLFile(file)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse library file %s: %w", file, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode library file %s: %w", file, diags)
	}
	return &root, nil
}

func duplicates(origins map[string][]string) map[string][]string {
	dups := make(map[string][]string)
	for name, files := range origins {
		if len(files) > 1 {
			dups[name] = files
		}
	}
	return dups
}

// Module returns the module definition with the given name.
func (l *Library) Module(name string) (*model.Definition, error) {
	def, ok := l.modules[name]
	if !ok {
		return nil, &NotFoundError{Kind: kindModule, Name: name}
	}
	return def, nil
}

// Template returns the base template with the given name.
func (l *Library) Template(name string) (*model.Template, error) {
	tpl, ok := l.templates[name]
	if !ok {
		return nil, &NotFoundError{Kind: kindTemplate, Name: name}
	}
	return tpl, nil
}

// HasModule reports whether a module definition exists.
func (l *Library) HasModule(name string) bool {
	_, ok := l.modules[name]
	return ok
}

// HasTemplate reports whether a template definition exists.
func (l *Library) HasTemplate(name string) bool {
	_, ok := l.templates[name]
	return ok
}

// ModuleNames returns every module name in sorted order.
func (l *Library) ModuleNames() []string {
	return sortedKeys(l.modules)
}

// TemplateNames returns every template name in sorted order.
func (l *Library) TemplateNames() []string {
	return sortedKeys(l.templates)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Add registers a definition directly. It is used by tests and by callers
// that build definitions in code.
func (l *Library) Add(def *model.Definition) {
	l.modules[def.Name] = def
}

// AddTemplate registers a template directly.
func (l *Library) AddTemplate(tpl *model.Template) {
	l.templates[tpl.Name] = tpl
}
