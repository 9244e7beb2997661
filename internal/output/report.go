package output

import (
	"fmt"

	"github.com/vk/taintgrid/internal/engine"
	"gopkg.in/yaml.v3"
)

// Report summarises one generated benchmark case.
type Report struct {
	RunID    string         `yaml:"run_id"`
	Config   string         `yaml:"config"`
	Template string         `yaml:"template"`
	Project  string         `yaml:"project"`
	Compiled bool           `yaml:"compiled"`
	Units    []string       `yaml:"units"`
	Flows    int            `yaml:"flows"`
	AllFlows int            `yaml:"all_flows"`
	Lines    map[string]int `yaml:"lines,omitempty"`
	Nodes    []NodeReport   `yaml:"nodes"`
}

// NodeReport is the flow and identifier record of one module node.
type NodeReport struct {
	ID          int               `yaml:"id"`
	Module      string            `yaml:"module"`
	Number      int               `yaml:"number"`
	Passed      string            `yaml:"passed"`
	Bindings    map[int]int       `yaml:"bindings,omitempty"`
	Identifiers map[string]string `yaml:"identifiers,omitempty"`
}

// NewReport builds the report of a composition result.
func NewReport(res *engine.Result, project string, opts CaseOptions) *Report {
	r := &Report{
		RunID:    opts.RunID,
		Config:   res.Config,
		Template: res.Template,
		Project:  project,
		Compiled: opts.Compiled,
		Flows:    len(res.Connections.SourceSink),
		AllFlows: len(res.Connections.All),
		Lines:    res.Lines,
	}
	for _, u := range res.Units {
		r.Units = append(r.Units, u.ClassName)
	}
	for _, b := range res.Bindings {
		r.Nodes = append(r.Nodes, NodeReport{
			ID:          b.Node,
			Module:      b.Module,
			Number:      b.Number,
			Passed:      b.Passed,
			Bindings:    b.Table,
			Identifiers: b.Identifiers,
		})
	}
	return r
}

// Marshal renders the report as YAML.
func (r *Report) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return out, nil
}
