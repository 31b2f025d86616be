package publish

import (
	"context"
	"time"

	"github.com/oshokin/pinepoint/internal/domain/face"
)

// Publisher forwards frames to a companion device or service.
type Publisher interface {
	Publish(ctx context.Context, f face.Frame) error
	Close() error
}

// Nop discards every frame.
type Nop struct{}

// Publish does nothing.
func (Nop) Publish(context.Context, face.Frame) error { return nil }

// Close does nothing.
func (Nop) Close() error { return nil }

// Payload is the wire form of a frame.
type Payload struct {
	Time         time.Time `json:"time"`
	Clock        string    `json:"clock"`
	ClockText    string    `json:"clock_text"`
	MinutesLeft  int       `json:"minutes_left"`
	NextBoundary int       `json:"next_boundary"`
	CellsToFill  int       `json:"cells_to_fill"`
	CueMillis    []int64   `json:"cue_ms,omitempty"`
}

// NewPayload converts a frame into its wire form.
func NewPayload(f face.Frame) Payload {
	p := Payload{
		Time:         f.Time,
		Clock:        f.Clock.String(),
		ClockText:    f.ClockText,
		MinutesLeft:  f.MinutesLeft,
		NextBoundary: f.NextBoundary,
		CellsToFill:  f.CellsToFill,
	}

	if f.Cue != nil {
		p.CueMillis = f.Cue.Milliseconds()
	}

	return p
}
