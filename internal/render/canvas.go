package render

import (
	"image"
	"image/color"
)

const (
	// ScreenWidth is the width of the watch screen in pixels.
	ScreenWidth = 144
	// ScreenHeight is the height of the watch screen in pixels.
	ScreenHeight = 168
)

// Canvas is an in-memory display backed by an RGBA image.
type Canvas struct {
	img    *image.RGBA
	frames int
}

// NewCanvas returns a canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// NewScreen returns a canvas the size of the watch screen.
func NewScreen() *Canvas {
	return NewCanvas(ScreenWidth, ScreenHeight)
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (x, y int16) {
	b := c.img.Bounds()

	return int16(b.Dx()), int16(b.Dy()) //nolint:gosec // Screen sizes fit in int16.
}

// SetPixel sets one pixel. Out-of-bounds writes are ignored.
func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	c.img.SetRGBA(int(x), int(y), col)
}

// Display marks the end of a frame.
func (c *Canvas) Display() error {
	c.frames++

	return nil
}

// Image returns the current canvas contents.
func (c *Canvas) Image() image.Image {
	return c.img
}

// Frames returns how many times Display was called.
func (c *Canvas) Frames() int {
	return c.frames
}
