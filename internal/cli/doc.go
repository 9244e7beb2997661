// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It builds
// the cobra command tree, layers flags over the viper settings and translates
// the result into the application's internal configuration.
package cli
