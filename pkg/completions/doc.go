// Package completions generates shell-completion scripts by invoking the
// freshly built binary, and installs them into shell-specific completion
// directories. It runs strictly after a successful build.
package completions
