// Package flow threads tainted values through the configuration tree.
//
// Modules that belong to one logical data flow share a module number. Each
// node owns a small binding table mapping module numbers to the id of the
// node that last produced that slot. Tables are copied on every parent→child
// edge, so a value produced high in the tree is visible to every descendant
// while sibling subtrees never observe each other's bindings.
package flow
