// Package platform resolves target platforms to the additional native
// libraries and frameworks that must be linked or made discoverable at build
// and run time. Resolution is a pure lookup over a finite enumeration so
// platform knowledge never leaks into individual build steps.
package platform
