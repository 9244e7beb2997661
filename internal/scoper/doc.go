// Package scoper rewrites a module's code fragments so that the same
// definition can be instantiated any number of times in one application.
//
// Two independent passes run per node. Identifier uniquification renames every
// author-declared scoped identifier (`§name$`) to `name<n>`, where n comes from
// a counter that only ever increases during a run. Sentinel rewriting turns the
// two sensitive-data sentinels into names derived from the flow they belong
// to, so a producer and all of its downstream consumers agree on one variable
// name without a global symbol table.
package scoper
