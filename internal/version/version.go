// Package version exposes the build version, overridable at link time:
//
//	go build -ldflags "-X github.com/sqmw/repofolio/internal/version.Version=1.2.3"
package version

// Version is the semantic version of this build.
var Version = "0.4.0-dev"

// UserAgent is sent with every outbound API request.
func UserAgent() string {
	return "repofolio/" + Version
}
