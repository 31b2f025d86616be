package render

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/pinepoint/internal/domain/face"
	"github.com/oshokin/pinepoint/internal/domain/grid"
)

// frameAt computes a frame with the default face in UTC.
func frameAt(hour, minute int) face.Frame {
	f := face.New(face.WithLocation(time.UTC))

	return f.Compute(time.Date(2026, time.October, 16, hour, minute, 0, 0, time.UTC))
}

// colorAt reads the canvas pixel at x, y.
func colorAt(c *Canvas, x, y int) color.RGBA {
	return c.Image().(*image.RGBA).RGBAAt(x, y)
}

// TestDraw_FillsCountdownCells checks lit and unlit cells for 32 minutes left.
func TestDraw_FillsCountdownCells(t *testing.T) {
	t.Parallel()

	canvas := NewScreen()
	r := NewRenderer(DefaultPalette)

	frame := frameAt(9, 0)
	require.NoError(t, r.Draw(canvas, frame))
	require.Equal(t, 1, canvas.Frames())

	for _, cell := range grid.DefaultLayout.Cells(frame.MinutesLeft) {
		rect := grid.DefaultGeometry.Rect(cell.Row, cell.Column)
		center := image.Pt((rect.Min.X+rect.Max.X)/2, (rect.Min.Y+rect.Max.Y)/2)

		want := DefaultPalette.Background
		if cell.Filled {
			want = DefaultPalette.Foreground
		}

		require.Equal(t, want, colorAt(canvas, center.X, center.Y), "cell %d", cell.Index)
	}

	// Rounded corner stays background even on a lit cell.
	corner := grid.DefaultGeometry.Rect(7, 4).Min
	require.Equal(t, DefaultPalette.Background, colorAt(canvas, corner.X, corner.Y))
}

// TestDraw_ClockText checks that the time layer receives ink and the grid area does not at zero.
func TestDraw_ClockText(t *testing.T) {
	t.Parallel()

	canvas := NewScreen()
	r := NewRenderer(DefaultPalette.Inverted())

	require.NoError(t, r.Draw(canvas, frameAt(9, 32)))

	var gridInk, textInk int

	img := canvas.Image().(*image.RGBA)
	for y := range ScreenHeight {
		for x := range ScreenWidth {
			if img.RGBAAt(x, y) != r.Palette.Foreground {
				continue
			}

			if image.Pt(x, y).In(r.TimeLayer) {
				textInk++
			} else {
				gridInk++
			}
		}
	}

	require.Zero(t, gridInk)
	require.Positive(t, textInk)
}

// failingDisplay wraps a canvas and fails on flush.
type failingDisplay struct {
	*Canvas
}

var errFlush = errors.New("flush failed")

// Display always fails.
func (failingDisplay) Display() error { return errFlush }

// TestDraw_Errors covers nil and failing displays.
func TestDraw_Errors(t *testing.T) {
	t.Parallel()

	r := NewRenderer(DefaultPalette)
	require.Error(t, r.Draw(nil, frameAt(9, 0)))
	require.ErrorIs(t, r.Draw(failingDisplay{NewScreen()}, frameAt(9, 0)), errFlush)
}

// TestPalette_Inverted swaps colours.
func TestPalette_Inverted(t *testing.T) {
	t.Parallel()

	p := DefaultPalette.Inverted()
	require.Equal(t, DefaultPalette.Foreground, p.Background)
	require.Equal(t, DefaultPalette.Background, p.Foreground)
}

// TestText renders the terminal grid.
func TestText(t *testing.T) {
	t.Parallel()

	out := Text(frameAt(9, 30), grid.DefaultLayout)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	require.Len(t, lines, 9)
	require.Equal(t, ". . . . .", lines[0])
	require.Equal(t, ". . . # #", lines[7])
	require.Equal(t, "09:30 AM  (2 min left)", lines[8])
}

// TestEncode writes both formats and rejects unknown ones.
func TestEncode(t *testing.T) {
	t.Parallel()

	img := NewCanvas(4, 4).Image()

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, FormatBMP))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("BM")))

	buf.Reset()
	require.NoError(t, Encode(&buf, img, FormatPNG))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

	require.ErrorIs(t, Encode(&buf, img, "gif"), ErrUnknownFormat)

	require.Equal(t, FormatPNG, FormatFromPath("face.PNG"))
	require.Equal(t, FormatBMP, FormatFromPath("face.bmp"))
	require.Equal(t, FormatBMP, FormatFromPath("face"))
}

// TestCanvas_Size reports the screen size.
func TestCanvas_Size(t *testing.T) {
	t.Parallel()

	x, y := NewScreen().Size()
	require.Equal(t, int16(ScreenWidth), x)
	require.Equal(t, int16(ScreenHeight), y)
}
