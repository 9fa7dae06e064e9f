// Package exec runs external build tools with logging, timeouts, and
// redaction. Every orchestration step that invokes a compiler, linter, or
// the built binary itself goes through this wrapper.
package exec
