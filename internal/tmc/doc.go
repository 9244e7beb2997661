// Package tmc parses a Template/Module Configuration (TMC) into the tree of
// module references the engine composes.
//
// A TMC is a whitespace-delimited token stream. The first token names the
// base template; every following token names a module, optionally suffixed
// with a number that ties modules into one logical data flow. A `(` opens a
// sibling group rooted at the module token right before it and `)` closes
// it:
//
//	Basic ImeiSource1 ( Loop ( LogSink1 ) SmsSink1 )
//
// builds ImeiSource1 with the children Loop and SmsSink1, and LogSink1 below
// Loop.
package tmc
