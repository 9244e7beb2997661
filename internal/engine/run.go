package engine

import (
	"context"
	"errors"

	"github.com/vk/taintgrid/internal/ctxlog"
	"github.com/vk/taintgrid/internal/flow"
	"github.com/vk/taintgrid/internal/model"
	"github.com/vk/taintgrid/internal/placeholder"
	"github.com/vk/taintgrid/internal/render"
	"github.com/vk/taintgrid/internal/scoper"
)

// dedupedFields are emitted at most once per run.
var dedupedFields = []model.Field{model.FieldImports, model.FieldPermissions}

// run is the state of one composition.
type run struct {
	counter  scoper.Counter
	slots    *placeholder.Manager
	flows    *flow.Tracker
	composer *render.Composer
	seen     map[model.Field]map[string]bool
	renames  map[int]map[string]string
}

func newRun(tpl *model.Template, project string) *run {
	seen := make(map[model.Field]map[string]bool, len(dedupedFields))
	for _, f := range dedupedFields {
		seen[f] = make(map[string]bool)
	}
	return &run{
		slots:    placeholder.NewManager(project),
		flows:    flow.NewTracker(),
		composer: render.New(tpl, project),
		seen:     seen,
		renames:  make(map[int]map[string]string),
	}
}

func (r *run) process(ctx context.Context, lib Library, n *model.Node) error {
	logger := ctxlog.FromContext(ctx).With("module", n.Token, "id", n.ID)

	var f model.Fragments
	if !n.Structural {
		def, err := definition(lib, n)
		if err != nil {
			return &Error{Kind: KindLookup, Node: n.ID, Module: n.Token, Err: err}
		}
		n.Instantiate(def)

		passed := r.flows.Visit(ctx, n)
		scoper.RewriteSentinels(&n.Content, n.Number, passed, n.ID)
		r.dedupe(&n.Content)

		f = model.Join(n.Content)
		if len(n.Flows) > 0 && !scoper.AttachStatementID(&f, n.Flows, n.ID) {
			logger.Warn("Anchor statement of flow not found, its line will be reported as 0.",
				"statement", n.Flows[0].StatementSignature)
		}
		if renames := scoper.Uniquify(&f, n.Flows, &r.counter); len(renames) > 0 {
			m := make(map[string]string, len(renames))
			for _, rn := range renames {
				m[rn.From] = rn.To
			}
			r.renames[n.ID] = m
		}
		n.Fragments = f
		logger.Debug("Module scoped.", "passed", passed.String())
	}

	values, err := r.slots.Prepare(n, f)
	if err != nil {
		var slotErr *placeholder.SlotError
		if errors.As(err, &slotErr) {
			return &Error{Kind: KindPlaceholder, Node: n.ID, Module: n.Token, Err: err}
		}
		return &Error{Kind: KindStructural, Node: n.ID, Module: n.Token, Err: err}
	}
	if err := r.composer.Insert(ctx, values); err != nil {
		return &Error{Kind: KindRender, Node: n.ID, Module: n.Token, Err: err}
	}
	return nil
}

func definition(lib Library, n *model.Node) (*model.Definition, error) {
	if n.Name == model.EmptyModule {
		return &model.Definition{Name: model.EmptyModule, Type: model.TypeNeutral, Pattern: model.PatternNone}, nil
	}
	return lib.Module(n.Name)
}

// dedupe drops imports and permissions an earlier node already emitted.
func (r *run) dedupe(c *model.Content) {
	for _, field := range dedupedFields {
		var kept []string
		for _, s := range c.Get(field) {
			if r.seen[field][s] {
				continue
			}
			r.seen[field][s] = true
			kept = append(kept, s)
		}
		c.Set(field, kept)
	}
}
