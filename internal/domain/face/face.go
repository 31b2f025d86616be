package face

import (
	"time"

	"github.com/ncruces/go-strftime"

	"github.com/oshokin/pinepoint/internal/domain/cue"
	"github.com/oshokin/pinepoint/internal/domain/grid"
	"github.com/oshokin/pinepoint/internal/domain/schedule"
)

// DefaultClockFormat renders 24-hour time with an AM/PM marker, e.g. "09:00 AM".
const DefaultClockFormat = "%H:%M %p"

// Frame is everything one tick produces.
type Frame struct {
	// Time is the wall-clock instant the frame was computed for.
	Time time.Time
	// Clock is the time of day in the face location.
	Clock schedule.Clock
	// MinutesLeft counts down to NextBoundary.
	MinutesLeft int
	// NextBoundary is the targeted boundary in minutes since midnight.
	NextBoundary int
	// CellsToFill is the number of lit grid cells.
	CellsToFill int
	// ClockText is the formatted digital clock.
	ClockText string
	// Cue is the vibration to enqueue, nil when no threshold matched.
	Cue *cue.Cue
}

// Face holds the static configuration of the watch face.
type Face struct {
	boundaries  schedule.Boundaries
	selector    cue.Selector
	layout      grid.Layout
	clockFormat string
	location    *time.Location
}

// Option configures a Face.
type Option func(*Face)

// WithBoundaries replaces the default boundary table.
func WithBoundaries(b schedule.Boundaries) Option {
	return func(f *Face) {
		if len(b) > 0 {
			f.boundaries = b
		}
	}
}

// WithDurations sets the cue tuning.
func WithDurations(d cue.Durations) Option {
	return func(f *Face) {
		f.selector = cue.NewSelector(d)
	}
}

// WithLayout sets the grid size.
func WithLayout(l grid.Layout) Option {
	return func(f *Face) {
		if l.Total() > 0 {
			f.layout = l
		}
	}
}

// WithClockFormat sets the strftime layout of the clock text.
func WithClockFormat(format string) Option {
	return func(f *Face) {
		if format != "" {
			f.clockFormat = format
		}
	}
}

// WithLocation sets the time zone the face reads the clock in.
func WithLocation(loc *time.Location) Option {
	return func(f *Face) {
		if loc != nil {
			f.location = loc
		}
	}
}

// New returns a face with the compiled-in defaults overridden by opts.
func New(opts ...Option) *Face {
	f := &Face{
		boundaries:  schedule.DefaultBoundaries,
		selector:    cue.NewSelector(cue.DefaultDurations),
		layout:      grid.DefaultLayout,
		clockFormat: DefaultClockFormat,
		location:    time.Local,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Boundaries returns the boundary table.
func (f *Face) Boundaries() schedule.Boundaries {
	return f.boundaries
}

// Layout returns the grid layout.
func (f *Face) Layout() grid.Layout {
	return f.layout
}

// Location returns the time zone of the face.
func (f *Face) Location() *time.Location {
	return f.location
}

// Compute builds the frame for now.
func (f *Face) Compute(now time.Time) Frame {
	local := now.In(f.location)
	clock := schedule.ClockOf(local)
	minutesLeft := schedule.MinutesLeft(f.boundaries, clock)

	frame := Frame{
		Time:         local,
		Clock:        clock,
		MinutesLeft:  minutesLeft,
		NextBoundary: f.boundaries.Next(clock),
		CellsToFill:  grid.CellsToFill(minutesLeft, f.layout.Total()),
		ClockText:    strftime.Format(f.clockFormat, local),
	}

	if c, ok := f.selector.Select(minutesLeft); ok {
		frame.Cue = &c
	}

	return frame
}
