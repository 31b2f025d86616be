// Package cue selects the vibration pattern fired at fixed minute thresholds
// before a period ends.
//
// Selection is an exact match on minutes left. Values without a pattern
// produce no cue at all. Driving the motor belongs to internal/vibe.
package cue
