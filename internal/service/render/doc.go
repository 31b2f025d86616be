// Package render implements pinepoint-render, which draws one frame of the
// face to an image file without running the tick loop.
package render
