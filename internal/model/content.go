// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the content record of a module: the eight named code
// fields a module may contribute to the generated application.
//
// Why an explicit record instead of a map?
//
// The set of fields is closed and every stage of the engine treats some of
// them specially (imports are de-duplicated, module/methods/globals get child
// slots, permissions/components/views go to the manifest and layout). Naming
// them in a struct makes an unknown field a compile error and lets a nil slice
// say "the definition did not declare this field".
package model

import "strings"

// Field names one content field. The value doubles as the field's
// placeholder name in templates.
type Field string

const (
	FieldImports     Field = "imports"
	FieldGlobals     Field = "globals"
	FieldModule      Field = "module"
	FieldMethods     Field = "methods"
	FieldClasses     Field = "classes"
	FieldPermissions Field = "permissions"
	FieldComponents  Field = "components"
	FieldViews       Field = "views"
)

// AllFields lists every content field in declaration order.
var AllFields = []Field{
	FieldImports,
	FieldGlobals,
	FieldModule,
	FieldMethods,
	FieldClasses,
	FieldPermissions,
	FieldComponents,
	FieldViews,
}

// Content holds the raw snippet lists of a module definition.
type Content struct {
	Imports     []string
	Globals     []string
	Module      []string
	Methods     []string
	Classes     []string
	Permissions []string
	Components  []string
	Views       []string
}

func (c *Content) ptr(f Field) *[]string {
	switch f {
	case FieldImports:
		return &c.Imports
	case FieldGlobals:
		return &c.Globals
	case FieldModule:
		return &c.Module
	case FieldMethods:
		return &c.Methods
	case FieldClasses:
		return &c.Classes
	case FieldPermissions:
		return &c.Permissions
	case FieldComponents:
		return &c.Components
	case FieldViews:
		return &c.Views
	}
	panic("model: unknown content field " + string(f))
}

// Get returns the snippets of a field.
func (c *Content) Get(f Field) []string { return *c.ptr(f) }

// Set replaces the snippets of a field.
func (c *Content) Set(f Field, snippets []string) { *c.ptr(f) = snippets }

// Clone returns a deep copy so that rewriting a node's content never touches
// the library's definition.
func (c Content) Clone() Content {
	var out Content
	for _, f := range AllFields {
		if src := c.Get(f); src != nil {
			out.Set(f, append([]string(nil), src...))
		}
	}
	return out
}

// Fragments holds the joined, scoped text of each content field.
type Fragments struct {
	Imports     string
	Globals     string
	Module      string
	Methods     string
	Classes     string
	Permissions string
	Components  string
	Views       string
}

func (f *Fragments) ptr(field Field) *string {
	switch field {
	case FieldImports:
		return &f.Imports
	case FieldGlobals:
		return &f.Globals
	case FieldModule:
		return &f.Module
	case FieldMethods:
		return &f.Methods
	case FieldClasses:
		return &f.Classes
	case FieldPermissions:
		return &f.Permissions
	case FieldComponents:
		return &f.Components
	case FieldViews:
		return &f.Views
	}
	panic("model: unknown content field " + string(field))
}

// Get returns the text of a field.
func (f *Fragments) Get(field Field) string { return *f.ptr(field) }

// Set replaces the text of a field.
func (f *Fragments) Set(field Field, text string) { *f.ptr(field) = text }

// Join builds fragments by joining every field's snippets with newlines.
func Join(c Content) Fragments {
	var f Fragments
	for _, field := range AllFields {
		f.Set(field, strings.Join(c.Get(field), "\n"))
	}
	return f
}
