// Package version provides version information for the application.
//
// Version and Revision are set at build time through -ldflags; when built
// without them, values from the embedded build info are used instead.
package version
