package engine

import "fmt"

// Kind classifies a composition failure.
type Kind string

const (
	// KindStructural is a malformed configuration tree.
	KindStructural Kind = "structural"
	// KindLookup is a module or template missing from the library.
	KindLookup Kind = "lookup"
	// KindPlaceholder is a node without a reserved slot.
	KindPlaceholder Kind = "placeholder"
	// KindRender is a failure to render or finish the documents.
	KindRender Kind = "render"
)

// Error is a fatal composition failure. Node is -1 when the failure is not
// tied to a node.
type Error struct {
	Kind   Kind
	Node   int
	Module string
	Err    error
}

func (e *Error) Error() string {
	if e.Node < 0 {
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s error at module %q (id %d): %v", e.Kind, e.Module, e.Node, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
