package placeholder

import (
	"slices"
	"strings"

	"github.com/vk/taintgrid/internal/model"
)

// Manager tracks pending slots across one composition run.
type Manager struct {
	project   string
	pending   []Slot
	processed int
}

// NewManager creates a manager that renders the given project name into
// `{{ project }}`.
func NewManager(project string) *Manager {
	return &Manager{project: project}
}

// Pending returns the slots reserved but not yet filled.
func (m *Manager) Pending() []Slot {
	return slices.Clone(m.pending)
}

// Prepare registers the node's children, reserves their slots in the node's
// fragments and returns the values the node renders. Nodes must be prepared
// in breadth-first order.
func (m *Manager) Prepare(n *model.Node, f model.Fragments) (Values, error) {
	for i := range n.Children {
		m.pending = append(m.pending, Slot{Parent: n.ID, Index: i})
	}

	own := Slot{Parent: n.ParentID, Index: n.ChildIndex}
	keyed := m.processed > 0
	if keyed && !slices.Contains(m.pending, own) {
		return nil, &SlotError{Node: n.ID, Slot: own}
	}

	seedAndTerminate(&f)
	for _, category := range Renameable {
		reserveChildSlots(&f, n, category)
	}

	vals := make(Values)
	for _, category := range Renameable {
		text := f.Get(category)
		if keyed {
			vals[own.Key(category)] = text
			vals[string(category)] = Marker(string(category))
			continue
		}
		if text == "" {
			text = Marker(string(category))
		}
		vals[string(category)] = text
	}
	for _, field := range model.AllFields {
		if !slices.Contains(Renameable, field) {
			vals[string(field)] = f.Get(field)
		}
	}
	vals[ProjectKey] = m.project

	for _, s := range m.pending {
		if keyed && s == own {
			continue
		}
		for _, category := range Renameable {
			if _, ok := vals[s.Key(category)]; !ok {
				vals[s.Key(category)] = Marker(s.Key(category))
			}
		}
	}

	if keyed {
		m.pending = slices.DeleteFunc(m.pending, func(s Slot) bool { return s == own })
	}
	m.processed++
	return vals, nil
}

// seedAndTerminate makes every non-renameable field end in its own marker so
// that later nodes can still insert into it.
func seedAndTerminate(f *model.Fragments) {
	for _, field := range []model.Field{model.FieldClasses, model.FieldPermissions, model.FieldComponents, model.FieldViews} {
		text := f.Get(field)
		switch {
		case text == "":
			f.Set(field, Marker(string(field)))
		case !Contains(text, field):
			f.Set(field, text+"\n"+Marker(string(field)))
		}
	}

	// A module whose classes re-open the imports slot moves the flow into a
	// new compilation unit and keeps the slot itself.
	switch {
	case f.Imports == "":
		f.Imports = Marker(string(model.FieldImports))
	case !Contains(f.Imports, model.FieldImports) && !Contains(f.Classes, model.FieldImports):
		f.Imports += "\n" + Marker(string(model.FieldImports))
	}
}

// reserveChildSlots renames every bare marker of a category in the node's
// fragments to the slot of one child. Children beyond the last marker share
// its position in declaration order; without any marker their slots are
// appended to the category's own field.
func reserveChildSlots(f *model.Fragments, n *model.Node, category model.Field) {
	re := markerRegexes[category]
	children := len(n.Children)

	total := 0
	for _, field := range renameOrder {
		total += len(re.FindAllStringIndex(f.Get(field), -1))
	}

	slotsFrom := func(from int) string {
		markers := make([]string, 0, children-from)
		for i := from; i < children; i++ {
			markers = append(markers, Marker(Key(string(category), n.ID, i)))
		}
		return strings.Join(markers, "\n")
	}

	if total == 0 {
		if children == 0 {
			return
		}
		text := f.Get(category)
		if text != "" {
			text += "\n"
		}
		f.Set(category, text+slotsFrom(0))
		return
	}

	seq := 0
	for _, field := range renameOrder {
		renamed := re.ReplaceAllStringFunc(f.Get(field), func(string) string {
			k := seq
			seq++
			if k == total-1 && children > total {
				return slotsFrom(k)
			}
			return Marker(Key(string(category), n.ID, k))
		})
		f.Set(field, renamed)
	}
}
