package vibe

import (
	"context"
	"errors"
	"sync"

	"github.com/oshokin/pinepoint/internal/domain/cue"
	"github.com/oshokin/pinepoint/internal/logger"
)

// Vibrator enqueues a cue for playback.
type Vibrator interface {
	Enqueue(ctx context.Context, c cue.Cue) error
}

// LogVibrator writes every cue to the context logger.
type LogVibrator struct{}

// Enqueue logs the cue.
func (LogVibrator) Enqueue(ctx context.Context, c cue.Cue) error {
	logger.InfoKV(ctx, "Vibration cue", "pattern", c.String(), "pulses", c.Pulses(), "total", c.Total().String())

	return nil
}

// Recorder keeps every enqueued cue in memory.
type Recorder struct {
	// mu protects cues.
	mu   sync.Mutex
	cues []cue.Cue
}

// Enqueue records the cue.
func (r *Recorder) Enqueue(_ context.Context, c cue.Cue) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cues = append(r.cues, c)

	return nil
}

// Cues returns a copy of the recorded cues.
func (r *Recorder) Cues() []cue.Cue {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]cue.Cue, len(r.cues))
	copy(result, r.cues)

	return result
}

// Multi fans a cue out to several vibrators.
type Multi []Vibrator

// Enqueue forwards the cue to every vibrator and joins their errors.
func (m Multi) Enqueue(ctx context.Context, c cue.Cue) error {
	var errs []error

	for _, v := range m {
		if v == nil {
			continue
		}

		if err := v.Enqueue(ctx, c); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
