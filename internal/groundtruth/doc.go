// Package groundtruth writes the ground-truth document consumed by taint
// analysis evaluation tooling: one flow per source/sink connection, with
// the generic statement, line, method and class of both ends and the hashes
// of the compiled application.
//
// The schema is fixed by the downstream tooling. Output is byte-for-byte
// reproducible for identical input.
package groundtruth
