// Package utils holds the build metadata stamped in by the release build and
// small helpers shared by the CLI and the HTTP clients.
package utils

// Set with -ldflags "-X github.com/rocksolid/rocksolid/pkg/utils.Version=..."
// by the release build.
var (
	Version   = "dev"
	Sha       = "HEAD"
	Buildtime = "dev"
)

// UserAgent identifies rocksolid on outbound requests to the exercise
// catalog, the yoga pose API and the routine backend.
func UserAgent() string {
	return "rocksolid/" + Version
}
