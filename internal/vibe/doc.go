// Package vibe turns selected cues into physical feedback.
//
// The face only decides which cue fires. A Vibrator owns the output device:
// a log line, an audio speaker, or an in-memory recorder for tests.
package vibe
