package tmc

import (
	"fmt"

	"github.com/vk/taintgrid/internal/model"
)

// StructuralError reports a malformed configuration tree.
type StructuralError struct {
	Token    string
	Position int
	Message  string
}

func (e *StructuralError) Error() string {
	if e.Token == "" {
		return "invalid configuration: " + e.Message
	}
	return fmt.Sprintf("invalid configuration at token %d (%q): %s", e.Position, e.Token, e.Message)
}

// Build turns module tokens into a rooted tree. A single top-level module
// becomes the root; several top-level modules are grouped under a structural
// root. Node ids are assigned breadth-first.
func Build(tokens []string) (*model.Tree, error) {
	root := &model.Node{Structural: true, ParentID: model.NoParent}

	// stack holds the parent of the group currently being filled.
	stack := []*model.Node{root}
	var last *model.Node

	for pos, tok := range tokens {
		switch tok {
		case "(":
			if last == nil || last.Parent != stack[len(stack)-1] {
				return nil, &StructuralError{Token: tok, Position: pos, Message: "group is not preceded by a module"}
			}
			stack = append(stack, last)
			last = nil
		case ")":
			if len(stack) == 1 {
				return nil, &StructuralError{Token: tok, Position: pos, Message: "unmatched closing parenthesis"}
			}
			closed := stack[len(stack)-1]
			if len(closed.Children) == 0 {
				return nil, &StructuralError{Token: tok, Position: pos, Message: "empty group"}
			}
			stack = stack[:len(stack)-1]
			last = closed
		default:
			if IsGrouping(tok) {
				return nil, &StructuralError{Token: tok, Position: pos, Message: "grouping token must be a single parenthesis"}
			}
			parent := stack[len(stack)-1]
			ref := ParseReference(tok)
			n := &model.Node{
				Token:  tok,
				Name:   ref.Name,
				Number: ref.Number,
				Parent: parent,
			}
			parent.Children = append(parent.Children, n)
			last = n
		}
	}

	if len(stack) != 1 {
		open := stack[len(stack)-1]
		return nil, &StructuralError{Token: open.Token, Message: "unclosed group"}
	}
	if len(root.Children) == 0 {
		return nil, &StructuralError{Message: "configuration contains no modules"}
	}

	if len(root.Children) == 1 {
		root = root.Children[0]
		root.Parent = nil
	}
	return number(root), nil
}

// number assigns breadth-first ids and parent positions.
func number(root *model.Node) *model.Tree {
	tree := &model.Tree{Root: root}
	root.ParentID = model.NoParent
	root.ChildIndex = 0

	queue := []*model.Node{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		n.ID = len(tree.Nodes)
		tree.Nodes = append(tree.Nodes, n)
		for idx, child := range n.Children {
			child.ChildIndex = idx
			queue = append(queue, child)
		}
	}
	for _, n := range tree.Nodes {
		if n.Parent != nil {
			n.ParentID = n.Parent.ID
		}
	}
	return tree
}
