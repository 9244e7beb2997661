// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the two enumerations a module definition declares about
// itself: its security role and its data-flow pattern.
package model

import "fmt"

// ModuleType is the security role of a module.
type ModuleType string

const (
	TypeSource  ModuleType = "SOURCE"
	TypeSink    ModuleType = "SINK"
	TypeNeutral ModuleType = "NEUTRAL"
)

// ParseModuleType validates a raw type string.
func ParseModuleType(s string) (ModuleType, error) {
	switch t := ModuleType(s); t {
	case TypeSource, TypeSink, TypeNeutral:
		return t, nil
	}
	return "", fmt.Errorf("invalid module type %q: must be SOURCE, SINK or NEUTRAL", s)
}

// Pattern describes whether a module consumes (IN), produces (OUT) or ignores
// (NONE) the tracked variable slot of its module number.
type Pattern string

const (
	PatternIn   Pattern = "IN"
	PatternOut  Pattern = "OUT"
	PatternNone Pattern = "NONE"
)

// ParsePattern validates a raw pattern string. An empty pattern means NONE.
func ParsePattern(s string) (Pattern, error) {
	if s == "" {
		return PatternNone, nil
	}
	switch p := Pattern(s); p {
	case PatternIn, PatternOut, PatternNone:
		return p, nil
	}
	return "", fmt.Errorf("invalid pattern %q: must be IN, OUT or NONE", s)
}
