// Package common holds helpers shared by several services.
//
// It provides a lightweight gRPC client for the watch-face service with
// per-call timeouts. The single-instance guard and the instant parser used
// by the command-line tools live here too.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
