// Package render draws watch-face frames.
//
// Drawing goes through tinygo.org/x/drivers.Displayer, so the same Renderer
// can target a physical panel driver or the in-memory Canvas used for
// snapshots and tests.
package render
