package flow

import (
	"sort"

	"github.com/vk/taintgrid/internal/model"
)

// Connection links the anchor statement of an upstream module to the anchor
// statement of a module that receives its value.
type Connection struct {
	From model.Flow
	To   model.Flow
	// Number is the module number of the flow the connection belongs to.
	Number int
}

// Connections holds the two connection sets ground truth is written for.
type Connections struct {
	// SourceSink links every sink to the source at the start of its chain.
	SourceSink []Connection
	// All links every consumer to its nearest upstream module with flows.
	All []Connection
}

// Connect derives connections from the values recorded during traversal.
// Leaking and reachable labels are taken from the consumer's flow
// descriptor as declared in the library.
func Connect(tree *model.Tree, t *Tracker) Connections {
	var out Connections
	for _, n := range tree.Nodes {
		if n.Structural || len(n.Flows) == 0 || n.Type == model.TypeSource {
			continue
		}
		if n.Pattern != model.PatternIn && n.Pattern != model.PatternOut {
			continue
		}

		if producer := t.nearestWithFlows(tree, n); producer != nil {
			out.All = append(out.All, Connection{From: producer.Flows[0], To: n.Flows[0], Number: n.Number})
		}
		if n.Type == model.TypeSink {
			if source := t.chainSource(tree, n); source != nil {
				out.SourceSink = append(out.SourceSink, Connection{From: source.Flows[0], To: n.Flows[0], Number: n.Number})
			}
		}
	}

	byNumber := func(cs []Connection) {
		sort.SliceStable(cs, func(i, j int) bool { return cs[i].Number < cs[j].Number })
	}
	byNumber(out.SourceSink)
	byNumber(out.All)
	return out
}

// upstream returns the node a node received its value from.
func (t *Tracker) upstream(tree *model.Tree, n *model.Node) *model.Node {
	v, ok := t.passed[n.ID]
	if !ok || !v.Bound || v.ID == n.ID {
		return nil
	}
	up, ok := tree.Node(v.ID)
	if !ok {
		return nil
	}
	return up
}

func (t *Tracker) nearestWithFlows(tree *model.Tree, n *model.Node) *model.Node {
	for up := t.upstream(tree, n); up != nil; up = t.upstream(tree, up) {
		if len(up.Flows) > 0 {
			return up
		}
		if up.Type == model.TypeSource {
			return nil
		}
	}
	return nil
}

func (t *Tracker) chainSource(tree *model.Tree, n *model.Node) *model.Node {
	for up := t.upstream(tree, n); up != nil; up = t.upstream(tree, up) {
		if up.Type == model.TypeSource {
			if len(up.Flows) == 0 {
				return nil
			}
			return up
		}
	}
	return nil
}
