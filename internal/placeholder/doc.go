// Package placeholder manages the named insertion points of the accumulating
// template.
//
// A template may contain several structurally identical slots, because many
// nodes of the configuration tree want to insert "module" code. The manager
// makes sure each physical slot is filled exactly once and in tree order:
// every bare `{{ module }}`, `{{ methods }}` and `{{ globals }}` a node brings
// along is renamed to a slot reserved for one of the node's children
// (`{{ module_<nodeId>_<sequence> }}`), and every node after the first fills
// the slot its parent reserved for it (`module_<parentId>_<childIndex>`).
package placeholder
