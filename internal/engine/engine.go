package engine

import (
	"context"
	"fmt"

	"github.com/vk/taintgrid/internal/ctxlog"
	"github.com/vk/taintgrid/internal/flow"
	"github.com/vk/taintgrid/internal/javasplit"
	"github.com/vk/taintgrid/internal/model"
	"github.com/vk/taintgrid/internal/render"
	"github.com/vk/taintgrid/internal/tmc"
)

// Library is the module store the engine reads definitions from.
type Library interface {
	Module(name string) (*model.Definition, error)
	Template(name string) (*model.Template, error)
}

// Engine composes benchmark applications from a library.
type Engine struct {
	lib     Library
	project string
}

// New creates an engine that renders into the given project package.
func New(lib Library, project string) *Engine {
	return &Engine{lib: lib, project: project}
}

// Binding records what the flow tracker decided for one node.
type Binding struct {
	Node   int
	Module string
	Number int
	// Passed is the value the node's sentinels were derived from.
	Passed string
	Table  flow.Table
	// Identifiers maps the scoped identifiers of the node to their unique
	// names.
	Identifiers map[string]string
}

// Result is the output of one composition run.
type Result struct {
	Config   string
	Template string

	Manifest string
	Layout   string
	Units    []javasplit.Unit
	// Lines maps statement ids to their 1-based line in the units.
	Lines map[string]int

	Tree        *model.Tree
	Bindings    []Binding
	Connections flow.Connections
}

// Generate parses a configuration, builds its tree and composes it.
func (e *Engine) Generate(ctx context.Context, config string) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	config = tmc.Normalize(config)
	templateName, modules := tmc.Split(tmc.Tokenize(config))
	if templateName == "" {
		return nil, &Error{Kind: KindStructural, Node: -1, Err: fmt.Errorf("configuration is empty")}
	}
	tpl, err := e.lib.Template(tmc.ParseReference(templateName).Name)
	if err != nil {
		return nil, &Error{Kind: KindLookup, Node: -1, Module: templateName, Err: err}
	}

	tree, err := tmc.Build(modules)
	if err != nil {
		return nil, &Error{Kind: KindStructural, Node: -1, Err: err}
	}
	counts, total := tmc.CountModules(modules)
	logger.Info("Configuration tree built.", "template", tpl.Name, "modules", total, "nodes", len(tree.Nodes))
	logger.Debug("Module count.", "counts", counts)

	res, err := e.Compose(ctx, tree, tpl)
	if err != nil {
		return nil, err
	}
	res.Config = config
	return res, nil
}

// Compose renders a tree into a template. Nodes are processed strictly in
// id order, which is breadth-first.
func (e *Engine) Compose(ctx context.Context, tree *model.Tree, tpl *model.Template) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	r := newRun(tpl, e.project)

	err := tree.Walk(func(n *model.Node) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return r.process(ctx, e.lib, n)
	})
	if err != nil {
		return nil, err
	}

	out, err := r.composer.Finish(ctx)
	if err != nil {
		return nil, &Error{Kind: KindRender, Node: -1, Err: err}
	}

	res := &Result{
		Template:    tpl.Name,
		Manifest:    out.Manifest,
		Layout:      out.Layout,
		Units:       out.Units,
		Lines:       render.LineLookup(out.Units),
		Tree:        tree,
		Connections: flow.Connect(tree, r.flows),
	}
	for _, n := range tree.Modules() {
		passed, _ := r.flows.Passed(n.ID)
		res.Bindings = append(res.Bindings, Binding{
			Node:        n.ID,
			Module:      n.Token,
			Number:      n.Number,
			Passed:      passed.String(),
			Table:       r.flows.Table(n.ID),
			Identifiers: r.renames[n.ID],
		})
	}

	logger.Info("Composition finished.",
		"units", len(res.Units),
		"statements", len(res.Lines),
		"flows", len(res.Connections.SourceSink),
	)
	return res, nil
}
