// Package cli handles command-line argument parsing and validation for the
// plugkit entrypoint, translating flags into an app.Config.
package cli
