package library

import (
	"fmt"
	"sort"
	"strings"
)

// DuplicateError reports definitions that share a name.
type DuplicateError struct {
	Kind string
	// Names maps each duplicated name to every file that declares it.
	Names map[string][]string
}

func (e *DuplicateError) Error() string {
	names := make([]string, 0, len(e.Names))
	for name := range e.Names {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	fmt.Fprintf(&b, "multiple %s definitions have the same name:", e.Kind)
	for _, name := range names {
		fmt.Fprintf(&b, "\n- %s (%s)", name, strings.Join(e.Names[name], ", "))
	}
	return b.String()
}

// NotFoundError reports a lookup of an unknown definition.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s definition named %q", e.Kind, e.Name)
}
