// Package javasplit splits one rendered Java source string into one
// compilation unit per top-level type declaration.
//
// Declaration boundaries come from the tree-sitter Java grammar, so a type's
// extent is its real syntactic extent: nested and local classes stay inside
// their enclosing unit, and braces in literals or comments cannot shift a
// boundary.
package javasplit
