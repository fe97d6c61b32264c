// Package buildinfo holds build-time version information.
package buildinfo

// Version is the vomgr version, overridden at build time via
// -ldflags "-X github.com/vexyart/vexy-overnight/internal/buildinfo.Version=vX.Y.Z".
var Version = "dev"
