package render

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

const (
	// FormatBMP is the snapshot format of the original device screenshots.
	FormatBMP = "bmp"
	// FormatPNG is the compressed snapshot format.
	FormatPNG = "png"
)

// ErrUnknownFormat is returned for an unsupported image format.
var ErrUnknownFormat = errors.New("unknown image format")

// FormatFromPath picks the image format from the file extension, defaulting to BMP.
func FormatFromPath(path string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case FormatPNG:
		return FormatPNG
	default:
		return FormatBMP
	}
}

// Encode writes img to w in the requested format.
func Encode(w io.Writer, img image.Image, format string) error {
	var err error

	switch format {
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatPNG:
		err = png.Encode(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}

	return nil
}
