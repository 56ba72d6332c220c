// Package version provides build version information embedding for
// restkit clients.
//
// Version, git commit, branch, and build time are set at compile time
// via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/restkit/version.Version=1.0.0"
//
// The derived UserAgent value identifies the client on outbound requests.
package version
