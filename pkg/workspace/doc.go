// Package workspace reads the authoritative workspace manifest (axon.toml)
// and the dependency lock file (axon.lock). The manifest is the single
// source of truth for package name and version.
package workspace
