// Package version exposes build version information for the engine.
//
// Version and git metadata are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/proxycast/claude-provider/version.Version=1.2.0"
package version
