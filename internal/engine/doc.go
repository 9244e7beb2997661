// Package engine drives one composition run: it walks the configuration
// tree breadth-first and pushes every node through the flow tracker, the
// identifier scoper, the placeholder manager and the template composer.
//
// All mutable state of a run (identifier counter, pending slots, binding
// tables, de-duplication sets and the three accumulating documents) lives in
// a run value created per Compose call, so concurrent runs never share
// anything.
package engine
