// Package startup resolves and validates the run configuration and emits
// the structured startup log: banner, system information, configuration,
// and directory setup sections.
package startup
