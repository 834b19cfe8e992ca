// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the simulated request lifecycle that
// exercises the extension bootstrap, decoupled from any specific entrypoint
// like a CLI.
package app
