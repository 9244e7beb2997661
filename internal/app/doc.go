// Package app contains the core application logic. It defines the main App
// struct, its configuration and settings, and the generate, verify and
// listing workflows, decoupled from any specific entrypoint like a CLI.
package app
