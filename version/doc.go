// Package version reports build information for tabslice.
//
// Version, Commit and Date are set at build time through -ldflags:
//
//	-ldflags "-X github.com/dendrascience/tabslice/version.Version=v1.0.0 -X github.com/dendrascience/tabslice/version.Commit=abc123"
//
// When they are left at their defaults, the values are read from
// debug.ReadBuildInfo, so `go install` builds still report a module version
// and VCS revision.
package version
