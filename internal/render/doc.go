// Package render holds the three accumulating documents of a composition
// run (Java source, Android manifest and layout) and renders every node's
// values into them.
//
// Substitution is lazy: a placeholder without a value is left untouched so
// that a later node can still fill it. Finish strips whatever nobody claimed,
// formats the documents and splits the source into compilation units.
package render
