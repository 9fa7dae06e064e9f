// Package pkgbuild builds the workspace package into an installed binary
// artifact using a composed toolchain, and produces reproducible dist
// archives. Compilation itself is delegated to the external compiler
// component; lock file verification happens before any compiler runs.
package pkgbuild
