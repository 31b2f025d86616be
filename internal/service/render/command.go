package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/oshokin/pinepoint/internal/config"
	"github.com/oshokin/pinepoint/internal/logger"
	draw "github.com/oshokin/pinepoint/internal/render"
	"github.com/oshokin/pinepoint/internal/service/common"
)

// Options controls a single render.
type Options struct {
	// ConfigPath to YAML settings file; empty uses defaults.
	ConfigPath string
	// At is the instant to draw, HH:MM or RFC 3339; empty draws now.
	At string
	// OutputPath receives the image; the extension picks BMP or PNG.
	OutputPath string
	// Text receives the terminal rendition when set.
	Text io.Writer
}

// ErrNoOutput indicates a render without a destination file.
var ErrNoOutput = errors.New("output path must be provided")

// Run draws the frame for opts.At and writes it to opts.OutputPath.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "pinepoint-render")

	if opts.OutputPath == "" {
		return ErrNoOutput
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	watchFace, err := cfg.Face()
	if err != nil {
		return fmt.Errorf("build face: %w", err)
	}

	now := time.Now()

	at, err := common.ParseInstant(opts.At, now, watchFace.Location())
	if err != nil {
		return err
	}

	if at.IsZero() {
		at = now
	}

	frame := watchFace.Compute(at)

	palette := draw.DefaultPalette
	if cfg.InvertColors {
		palette = palette.Inverted()
	}

	screen := draw.NewScreen()
	if err = draw.NewRenderer(palette).Draw(screen, frame); err != nil {
		return fmt.Errorf("draw frame: %w", err)
	}

	file, err := os.Create(filepath.Clean(opts.OutputPath))
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	if err = draw.Encode(file, screen.Image(), draw.FormatFromPath(opts.OutputPath)); err != nil {
		_ = file.Close()

		return err
	}

	if err = file.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	if opts.Text != nil {
		if _, err = io.WriteString(opts.Text, draw.Text(frame, watchFace.Layout())); err != nil {
			return fmt.Errorf("write text: %w", err)
		}
	}

	logger.InfoKV(ctx, "Frame rendered",
		"path", opts.OutputPath,
		"clock", frame.ClockText,
		"minutes_left", frame.MinutesLeft,
	)

	return nil
}
