// Package library provides access to the module store: the directory tree of
// reusable code fragment definitions and base templates a configuration is
// composed from.
//
// Definitions are written in HCL, either in native syntax (.hcl) or in HCL's
// JSON syntax (.json). Each file may declare any number of `module` and
// `template` blocks. Loading is a pre-flight step: every file is parsed, every
// block is validated and duplicate names are rejected before the engine
// touches a single node, so a broken library can never produce a partial
// benchmark.
package library
