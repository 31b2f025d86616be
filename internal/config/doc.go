// Package config defines the watch-face settings shared by the Pine Point
// binaries and provides helpers to load, validate and save them in YAML.
//
// An empty path yields the compiled-in defaults: the boundary table is
// build-time configuration and a config file only overrides it.
package config
