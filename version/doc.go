// Package version reports the build identity of collectionkit binaries.
//
// Version, commit and build time are stamped at link time:
//
//	go build -ldflags "-X github.com/kbukum/collectionkit/version.Version=1.2.0" ./cmd/collectionkit
//
// Anything left unset falls back to the VCS data recorded by the Go toolchain.
package version
