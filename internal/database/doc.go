// Package database provides SQLite-based history storage for pwaffinity.
//
// Each check run is stored with the reference set it was scored against
// (source and MD5 digest) and one row per analyzed password holding its
// length, fingerprint and distance. Passwords themselves are never stored.
//
// The store uses modernc.org/sqlite, a CGO-free driver, so the binary
// cross-compiles without a C toolchain. The database is a single file in
// the XDG data directory.
package database
