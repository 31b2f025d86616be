// Package watch runs the watch face: it stands in for the device event loop
// that fires the init handler once and the tick handler on every minute.
//
// Handlers run one at a time on a single goroutine. Each tick recomputes the
// frame from the wall clock; nothing carries over between ticks.
package watch
