package server

import (
	"context"
	"time"

	"github.com/oshokin/pinepoint/internal/domain/face"
	"github.com/oshokin/pinepoint/internal/domain/schedule"
	"github.com/oshokin/pinepoint/internal/logger"
)

// Service answers face queries for the transport layer.
// Its methods satisfy the transport-side Service interface.
type Service struct {
	// face is read-only after construction.
	face *face.Face
	// now supplies the instant used for unset timestamps.
	now func() time.Time
}

// NewService creates a face query service over f. A nil now uses the wall clock.
func NewService(f *face.Face, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}

	return &Service{
		face: f,
		now:  now,
	}
}

// Frame computes the frame at the given instant; a zero instant means now.
func (s *Service) Frame(ctx context.Context, at time.Time) face.Frame {
	if at.IsZero() {
		at = s.now()
	}

	frame := s.face.Compute(at)

	logger.DebugKV(ctx, "Frame requested",
		"clock", frame.ClockText,
		"minutes_left", frame.MinutesLeft,
		"has_cue", frame.Cue != nil,
	)

	return frame
}

// Schedule returns the boundary table of the face.
func (s *Service) Schedule(ctx context.Context) schedule.Boundaries {
	boundaries := s.face.Boundaries()

	logger.DebugKV(ctx, "Schedule requested", "boundaries", len(boundaries))

	return boundaries
}
