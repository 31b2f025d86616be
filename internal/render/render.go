package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"tinygo.org/x/drivers"

	"github.com/oshokin/pinepoint/internal/domain/face"
	"github.com/oshokin/pinepoint/internal/domain/grid"
)

// Palette holds the two colours of the monochrome face.
type Palette struct {
	Foreground color.RGBA
	Background color.RGBA
}

//nolint:gochecknoglobals // Read-only colours.
var (
	black = color.RGBA{A: 0xff}
	white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	// DefaultPalette draws black cells on a white screen.
	DefaultPalette = Palette{Foreground: black, Background: white}
)

// Inverted swaps foreground and background.
func (p Palette) Inverted() Palette {
	return Palette{Foreground: p.Background, Background: p.Foreground}
}

// errNilDisplay is returned when Draw has nothing to draw on.
var errNilDisplay = errors.New("display is not set")

// Renderer draws frames onto a display.
type Renderer struct {
	Layout   grid.Layout
	Geometry grid.Geometry
	Palette  Palette
	// TimeLayer is the box the clock text is centred in.
	TimeLayer image.Rectangle
	// TextScale magnifies the bitmap font.
	TextScale int
}

// NewRenderer returns a renderer with the original face geometry.
func NewRenderer(palette Palette) *Renderer {
	return &Renderer{
		Layout:    grid.DefaultLayout,
		Geometry:  grid.DefaultGeometry,
		Palette:   palette,
		TimeLayer: image.Rect(0, 128, ScreenWidth, ScreenHeight),
		TextScale: 2,
	}
}

// Draw paints the frame and flushes the display.
func (r *Renderer) Draw(d drivers.Displayer, f face.Frame) error {
	if d == nil {
		return errNilDisplay
	}

	width, height := d.Size()
	fillRect(d, image.Rect(0, 0, int(width), int(height)), r.Palette.Background)

	for _, c := range r.Layout.Cells(f.MinutesLeft) {
		if !c.Filled {
			continue
		}

		fillRoundRect(d, r.Geometry.Rect(c.Row, c.Column), r.Geometry.CornerRadius, r.Palette.Foreground)
	}

	r.drawText(d, f.ClockText)

	if err := d.Display(); err != nil {
		return fmt.Errorf("flush display: %w", err)
	}

	return nil
}

// drawText centres text inside the time layer.
func (r *Renderer) drawText(d drivers.Displayer, text string) {
	if text == "" {
		return
	}

	scale := max(1, r.TextScale)
	fontFace := basicfont.Face7x13
	metrics := fontFace.Metrics()
	textWidth := font.MeasureString(fontFace, text).Ceil()
	textHeight := metrics.Height.Ceil()

	mask := image.NewAlpha(image.Rect(0, 0, textWidth, textHeight))
	drawer := font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: fontFace,
		Dot:  fixed.P(0, metrics.Ascent.Ceil()),
	}
	drawer.DrawString(text)

	originX := r.TimeLayer.Min.X + (r.TimeLayer.Dx()-textWidth*scale)/2
	originY := r.TimeLayer.Min.Y + (r.TimeLayer.Dy()-textHeight*scale)/2

	for y := range textHeight {
		for x := range textWidth {
			if mask.AlphaAt(x, y).A < 0x80 {
				continue
			}

			px := originX + x*scale
			py := originY + y*scale
			fillRect(d, image.Rect(px, py, px+scale, py+scale), r.Palette.Foreground)
		}
	}
}

// fillRect paints every pixel of rect.
func fillRect(d drivers.Displayer, rect image.Rectangle, c color.RGBA) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			d.SetPixel(int16(x), int16(y), c) //nolint:gosec // Screen coordinates fit in int16.
		}
	}
}

// fillRoundRect paints rect with all four corners rounded to radius.
func fillRoundRect(d drivers.Displayer, rect image.Rectangle, radius int, c color.RGBA) {
	radius = min(radius, rect.Dx()/2, rect.Dy()/2)
	if radius <= 0 {
		fillRect(d, rect, c)

		return
	}

	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			cx := min(max(x, rect.Min.X+radius), rect.Max.X-1-radius)
			cy := min(max(y, rect.Min.Y+radius), rect.Max.Y-1-radius)
			dx, dy := x-cx, y-cy

			if dx*dx+dy*dy > radius*radius {
				continue
			}

			d.SetPixel(int16(x), int16(y), c) //nolint:gosec // Screen coordinates fit in int16.
		}
	}
}
