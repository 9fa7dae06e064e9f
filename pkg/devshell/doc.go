// Package devshell provisions a scoped development environment for a
// workspace: toolchain pinning variables, native library search paths
// prepended to their platform variables, and workspace-wide wrappers
// around the toolchain's tools. Activation is reversible so nested or
// sequential environments never leak into each other.
package devshell
