package watch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"tinygo.org/x/drivers"

	"github.com/oshokin/pinepoint/internal/domain/face"
	"github.com/oshokin/pinepoint/internal/logger"
	"github.com/oshokin/pinepoint/internal/publish"
	"github.com/oshokin/pinepoint/internal/render"
	"github.com/oshokin/pinepoint/internal/vibe"
)

// Host wires the pure face to its outputs.
type Host struct {
	face      *face.Face
	renderer  *render.Renderer
	screen    drivers.Displayer
	vibrator  vibe.Vibrator
	publisher publish.Publisher
	// output receives the terminal rendition; nil disables it.
	output io.Writer
	// snapshotPath receives the latest screen image; empty disables it.
	snapshotPath string
}

// HostConfig lists the collaborators of a Host. Nil members get no-op defaults.
type HostConfig struct {
	Face         *face.Face
	Renderer     *render.Renderer
	Screen       drivers.Displayer
	Vibrator     vibe.Vibrator
	Publisher    publish.Publisher
	Output       io.Writer
	SnapshotPath string
}

// NewHost builds a host from cfg.
func NewHost(cfg HostConfig) *Host {
	h := &Host{
		face:         cfg.Face,
		renderer:     cfg.Renderer,
		screen:       cfg.Screen,
		vibrator:     cfg.Vibrator,
		publisher:    cfg.Publisher,
		output:       cfg.Output,
		snapshotPath: cfg.SnapshotPath,
	}

	if h.face == nil {
		h.face = face.New()
	}

	if h.renderer == nil {
		h.renderer = render.NewRenderer(render.DefaultPalette)
	}

	if h.screen == nil {
		h.screen = render.NewScreen()
	}

	if h.vibrator == nil {
		h.vibrator = vibe.LogVibrator{}
	}

	if h.publisher == nil {
		h.publisher = publish.Nop{}
	}

	return h
}

// Tick handles one minute: compute, vibrate, redraw, publish.
// Output failures are logged and never stop the face.
func (h *Host) Tick(ctx context.Context, now time.Time) face.Frame {
	frame := h.face.Compute(now)

	logger.DebugKV(ctx, "Tick",
		"clock", frame.Clock.String(),
		"minutes_left", frame.MinutesLeft,
		"cells", frame.CellsToFill,
	)

	if frame.Cue != nil {
		if err := h.vibrator.Enqueue(ctx, *frame.Cue); err != nil {
			logger.ErrorKV(ctx, "Failed to enqueue cue", "error", err)
		}
	}

	h.redraw(ctx, frame)

	if err := h.publisher.Publish(ctx, frame); err != nil {
		logger.WarnKV(ctx, "Failed to publish frame", "error", err)
	}

	return frame
}

// redraw paints the frame on the screen and mirrors it to the terminal and snapshot.
func (h *Host) redraw(ctx context.Context, frame face.Frame) {
	if err := h.renderer.Draw(h.screen, frame); err != nil {
		logger.ErrorKV(ctx, "Failed to draw frame", "error", err)
	}

	if h.output != nil {
		if _, err := io.WriteString(h.output, "\n"+render.Text(frame, h.face.Layout())); err != nil {
			logger.WarnKV(ctx, "Failed to write terminal frame", "error", err)
		}
	}

	if h.snapshotPath == "" {
		return
	}

	canvas, ok := h.screen.(*render.Canvas)
	if !ok {
		return
	}

	if err := writeSnapshot(h.snapshotPath, canvas); err != nil {
		logger.WarnKV(ctx, "Failed to write snapshot", "path", h.snapshotPath, "error", err)
	}
}

// Loop fires the init tick immediately, then one tick per minute boundary
// until ctx is cancelled.
func (h *Host) Loop(ctx context.Context, now func() time.Time) error {
	if now == nil {
		now = time.Now
	}

	frame := h.Tick(ctx, now())
	logger.InfoKV(ctx, "Watch face started", "clock", frame.ClockText, "minutes_left", frame.MinutesLeft)

	timer := time.NewTimer(NextTick(now()))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Context canceled, stopping watch face")

			return nil
		case <-timer.C:
			h.Tick(ctx, now())
			timer.Reset(NextTick(now()))
		}
	}
}

// NextTick returns the wait until the next wall-clock minute boundary.
// It is never zero, so a tick on the boundary waits a full minute.
func NextTick(now time.Time) time.Duration {
	return now.Truncate(time.Minute).Add(time.Minute).Sub(now)
}

// writeSnapshot saves the canvas atomically next to path.
func writeSnapshot(path string, canvas *render.Canvas) error {
	path = filepath.Clean(path)

	tmp, err := os.CreateTemp(filepath.Dir(path), ".pinepoint-snapshot-*")
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}

	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if err = render.Encode(tmp, canvas.Image(), render.FormatFromPath(path)); err != nil {
		_ = tmp.Close()

		return err
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}

	return nil
}
