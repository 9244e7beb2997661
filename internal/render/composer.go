package render

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/vk/taintgrid/internal/ctxlog"
	"github.com/vk/taintgrid/internal/format"
	"github.com/vk/taintgrid/internal/javasplit"
	"github.com/vk/taintgrid/internal/model"
	"github.com/vk/taintgrid/internal/placeholder"
	"golang.org/x/sync/errgroup"
)

// Categories rendered by each pass.
var (
	sourceCategories = []model.Field{
		model.FieldImports, model.FieldGlobals, model.FieldModule, model.FieldMethods, model.FieldClasses,
	}
	manifestCategories = []model.Field{model.FieldPermissions, model.FieldComponents}
	layoutCategories   = []model.Field{model.FieldViews}
)

// Result is the finished output of a composition run.
type Result struct {
	Manifest string
	Layout   string
	Units    []javasplit.Unit
}

// Composer accumulates the three documents of one run.
type Composer struct {
	project  string
	source   string
	manifest string
	layout   string
}

// New starts the documents from a base template. The manifest is
// pre-rendered with the quoted project name, which is the value the Android
// package attribute expects.
func New(tpl *model.Template, project string) *Composer {
	manifest := Substitute(strings.Join(tpl.Manifest, "\n"), placeholder.Values{
		placeholder.ProjectKey: strconv.Quote(project),
	})
	return &Composer{
		project:  project,
		source:   strings.Join(tpl.Source, "\n"),
		manifest: manifest,
		layout:   strings.Join(tpl.Layout, "\n"),
	}
}

// Insert renders one node's values into all three documents. The passes run
// concurrently and Insert returns only after all of them are done.
func (c *Composer) Insert(ctx context.Context, values placeholder.Values) error {
	var g errgroup.Group
	pass := func(doc *string, categories []model.Field) {
		subset := values.Subset(categories...)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			*doc = Substitute(*doc, subset)
			return nil
		})
	}
	pass(&c.source, sourceCategories)
	pass(&c.manifest, manifestCategories)
	pass(&c.layout, layoutCategories)
	return g.Wait()
}

// Source returns the accumulated Java source as rendered so far.
func (c *Composer) Source() string { return c.source }

// Manifest returns the accumulated manifest as rendered so far.
func (c *Composer) Manifest() string { return c.manifest }

// Layout returns the accumulated layout as rendered so far.
func (c *Composer) Layout() string { return c.layout }

// Finish strips unclaimed placeholders, formats the documents and splits the
// source into compilation units of the project package.
func (c *Composer) Finish(ctx context.Context) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	source := format.Java(Strip(c.source))
	manifest, err := format.XML(Strip(c.manifest))
	if err != nil {
		return nil, fmt.Errorf("failed to format manifest: %w", err)
	}
	layout, err := format.XML(Strip(c.layout))
	if err != nil {
		return nil, fmt.Errorf("failed to format layout: %w", err)
	}

	units, err := javasplit.Split(ctx, source, c.project)
	if err != nil {
		return nil, fmt.Errorf("failed to split source: %w", err)
	}
	logger.Debug("Composition finished.", "units", len(units))

	return &Result{Manifest: manifest, Layout: layout, Units: units}, nil
}
