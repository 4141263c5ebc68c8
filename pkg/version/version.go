// Package version contains the meshbench version.
package version

// Version is the symbolic version of this build. It is set at build time
// via -ldflags.
var Version string
