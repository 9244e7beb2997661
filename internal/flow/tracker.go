package flow

import (
	"context"
	"maps"
	"strconv"

	"github.com/vk/taintgrid/internal/ctxlog"
	"github.com/vk/taintgrid/internal/model"
)

// unboundValue is what an unbound read renders as. It keeps sentinel names of
// consumers without an upstream producer deterministic.
const unboundValue = "undefined"

// Table maps a module number to the id of its producer of record.
type Table map[int]int

// Clone returns an independent copy of the table.
func (t Table) Clone() Table {
	if t == nil {
		return Table{}
	}
	return maps.Clone(t)
}

// Value is the tainted value a node receives from upstream.
type Value struct {
	ID    int
	Bound bool
}

// Bind returns a bound value.
func Bind(id int) Value { return Value{ID: id, Bound: true} }

// Unbound is the value of a read without producer.
var Unbound = Value{}

// String renders the value the way sentinel names embed it.
func (v Value) String() string {
	if !v.Bound {
		return unboundValue
	}
	return strconv.Itoa(v.ID)
}

// Tracker records the binding table and passed value of every visited node.
type Tracker struct {
	tables map[int]Table
	passed map[int]Value
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		tables: make(map[int]Table),
		passed: make(map[int]Value),
	}
}

// Visit computes the binding table and passed value of a node. The parent
// must have been visited before.
func (t *Tracker) Visit(ctx context.Context, n *model.Node) Value {
	table := Table{}
	if !n.IsRoot() {
		table = t.tables[n.ParentID].Clone()
	}

	var passed Value
	switch n.Pattern {
	case model.PatternOut:
		if n.Type == model.TypeSource {
			passed = Bind(n.ID)
		} else {
			passed = lookup(table, n.Number)
		}
		table[n.Number] = n.ID
	case model.PatternIn:
		passed = lookup(table, n.Number)
	default:
		passed = Bind(0)
	}

	if !passed.Bound {
		ctxlog.FromContext(ctx).Warn("Module reads a flow number without upstream producer.",
			"module", n.Token, "id", n.ID, "number", n.Number)
	}

	t.tables[n.ID] = table
	t.passed[n.ID] = passed
	return passed
}

func lookup(table Table, number int) Value {
	id, ok := table[number]
	if !ok {
		return Unbound
	}
	return Bind(id)
}

// Table returns a copy of the binding table recorded for a node.
func (t *Tracker) Table(id int) Table {
	return t.tables[id].Clone()
}

// Passed returns the value handed to the scoper for a node.
func (t *Tracker) Passed(id int) (Value, bool) {
	v, ok := t.passed[id]
	return v, ok
}
