// Package face composes one watch-face frame from the current time.
//
// Compute is pure: it runs the countdown, the cue selection and the grid
// mapping, and formats the clock. The caller owns the display, the vibration
// motor and the tick timer.
package face
