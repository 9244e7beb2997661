// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Node, one vertex of the configuration tree, and Tree, the
// rooted collection of nodes in breadth-first order.
//
// Why breadth-first ids?
//
// The engine renders nodes one by one into a single accumulating template.
// A parent must expose the insertion slots of all its children before any
// child is rendered, and siblings must be rendered in declaration order.
// Numbering nodes breadth-first makes the id order the processing order, so
// every later stage can rely on "lower id was rendered first".
package model

// NoParent is the ParentID of the root node.
const NoParent = -1

// EmptyModule is a reserved module name. It needs no definition and
// contributes nothing but the slots of its children.
const EmptyModule = "empty"

// Node is one module reference in the configuration tree.
type Node struct {
	ID         int
	ParentID   int
	ChildIndex int

	// Token is the configuration token the node was created from.
	Token  string
	Name   string
	Number int

	// Structural marks the synthetic root that groups several top-level
	// modules. It has no definition and contributes only child slots.
	Structural bool

	Parent   *Node
	Children []*Node

	// Filled from the definition when the engine visits the node.
	Type    ModuleType
	Pattern Pattern
	Flows   []Flow
	Content Content

	// Fragments is the joined, scoped text once the scoper has run.
	Fragments Fragments
}

// IsRoot reports whether the node is the tree root.
func (n *Node) IsRoot() bool { return n.ParentID == NoParent }

// Instantiate copies a definition onto the node. Content and flows are deep
// copied so rewriting them never leaks into the library.
func (n *Node) Instantiate(def *Definition) {
	n.Type = def.Type
	n.Pattern = def.Pattern
	n.Content = def.Content.Clone()
	n.Flows = make([]Flow, len(def.Flows))
	for i, f := range def.Flows {
		f.ID = n.ID
		n.Flows[i] = f
	}
}

// Tree is a rooted configuration tree.
type Tree struct {
	Root *Node
	// Nodes holds every node indexed by id, which is breadth-first order.
	Nodes []*Node
}

// Node returns the node with the given id.
func (t *Tree) Node(id int) (*Node, bool) {
	if id < 0 || id >= len(t.Nodes) {
		return nil, false
	}
	return t.Nodes[id], true
}

// Walk visits every node in breadth-first order and stops at the first error.
func (t *Tree) Walk(fn func(n *Node) error) error {
	for _, n := range t.Nodes {
		if err := fn(n); err != nil {
			return err
		}
	}
	return nil
}

// Modules returns the non-structural nodes in breadth-first order.
func (t *Tree) Modules() []*Node {
	out := make([]*Node, 0, len(t.Nodes))
	for _, n := range t.Nodes {
		if !n.Structural {
			out = append(out, n)
		}
	}
	return out
}
