// Package cssbuild exports constants for scripts and tools that drive the
// cssbuild CLI.
package cssbuild

// Exit codes returned by the cssbuild CLI.
const (
	// ExitSuccess indicates every requested step completed.
	ExitSuccess = 0

	// ExitFailure indicates a step failed: a Sass syntax error, a missing
	// source, a minifier error or an interrupted run.
	ExitFailure = 1

	// ExitConfigError indicates an invalid configuration or an unknown
	// task, target or alias.
	ExitConfigError = 2

	// ExitEnvError indicates the selected Sass implementation is not
	// available, such as a missing Dart Sass executable.
	ExitEnvError = 3
)
