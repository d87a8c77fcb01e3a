// Package version carries build identity, populated via -ldflags at
// release build time.
package version

var (
	// Version is the current application version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// String renders the build identity for the -version flag.
func String() string {
	return Version + " (" + GitSHA + ", built " + BuildTime + ")"
}
