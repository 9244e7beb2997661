// Package format pretty-prints the generated Java source and Android XML
// documents so that identical inputs always produce byte-identical files.
package format
