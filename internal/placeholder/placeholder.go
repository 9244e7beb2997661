package placeholder

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vk/taintgrid/internal/model"
)

// ProjectKey is the placeholder the project name is rendered into.
const ProjectKey = "project"

// Renameable lists the categories whose slots are reserved per child.
var Renameable = []model.Field{model.FieldModule, model.FieldMethods, model.FieldGlobals}

// renameOrder is the order in which a node's fields are searched for bare
// renameable markers.
var renameOrder = []model.Field{model.FieldModule, model.FieldMethods, model.FieldClasses, model.FieldGlobals}

// Marker returns the placeholder text for a name.
func Marker(name string) string {
	return "{{ " + name + " }}"
}

// Key returns the qualified placeholder name of one slot.
func Key(name string, nodeID, seq int) string {
	return fmt.Sprintf("%s_%d_%d", name, nodeID, seq)
}

var markerRegexes = map[model.Field]*regexp.Regexp{}

func init() {
	for _, f := range model.AllFields {
		markerRegexes[f] = regexp.MustCompile(`\{\{\s*` + string(f) + `\s*\}\}`)
	}
}

// Contains reports whether text holds the bare marker of a field.
func Contains(text string, f model.Field) bool {
	return markerRegexes[f].MatchString(text)
}

// Slot identifies the insertion point a parent reserved for one child.
type Slot struct {
	Parent int
	Index  int
}

// Key returns the slot's placeholder name for a category.
func (s Slot) Key(f model.Field) string {
	return Key(string(f), s.Parent, s.Index)
}

// Values maps placeholder names to the text rendered into them.
type Values map[string]string

// Subset returns the values whose name belongs to one of the categories,
// plus the project name.
func (v Values) Subset(categories ...model.Field) Values {
	out := make(Values)
	for key, val := range v {
		if key == ProjectKey {
			out[key] = val
			continue
		}
		for _, c := range categories {
			if key == string(c) || strings.HasPrefix(key, string(c)+"_") {
				out[key] = val
				break
			}
		}
	}
	return out
}

// SlotError reports a node whose slot was never reserved by its parent,
// which only happens when nodes are not processed breadth-first.
type SlotError struct {
	Node int
	Slot Slot
}

func (e *SlotError) Error() string {
	return fmt.Sprintf("node %d has no pending slot %v: nodes must be processed breadth-first", e.Node, e.Slot)
}
