// Package toolchain composes independently versioned compiler, linter,
// formatter, and standard-library components into a single consistent
// toolchain handle consumed by the package builder and the dev environment
// provisioner.
package toolchain
