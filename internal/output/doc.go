// Package output writes a composed application into the Android project
// skeleton and collects the finished benchmark case (application, sources,
// configuration and ground truth) into its output directory.
package output
