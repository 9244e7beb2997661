// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the library records: module definitions, their taint flow
// descriptors and base templates.
//
// A Definition is analogous to a function definition: it is written once in
// the library and instantiated by every configuration token that names it. A
// Node (see node.go) is the invocation.
package model

// Flow describes one taint-flow anchor statement declared by a module.
type Flow struct {
	StatementSignature string
	ClassName          string
	MethodSignature    string
	Leaking            bool
	Reachable          bool
	// ID is the id of the node the flow belongs to. It is zero on library
	// definitions and set when the definition is instantiated.
	ID int
}

// Definition is a module record loaded from the library.
type Definition struct {
	Name    string
	Type    ModuleType
	Pattern Pattern
	Flows   []Flow
	Content Content
	Source  *FSInfo
}

// Template is a base application template loaded from the library.
type Template struct {
	Name     string
	Source   []string
	Manifest []string
	Layout   []string
	File     *FSInfo
}

// FSInfo links a library record back to the file that declared it.
type FSInfo struct {
	FilePath string
}

// NewFSInfo creates file system metadata for a record.
func NewFSInfo(filePath string) *FSInfo {
	return &FSInfo{FilePath: filePath}
}
