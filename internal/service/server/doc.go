// Package server runs pinepoint-server, the gRPC face query service.
package server
