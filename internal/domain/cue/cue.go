package cue

import (
	"fmt"
	"strings"
	"time"
)

// Cue is one vibration request. Segments alternate between motor-on and
// motor-off, starting with on.
type Cue struct {
	Segments []time.Duration
}

// Pulses returns the number of motor-on segments.
func (c Cue) Pulses() int {
	return (len(c.Segments) + 1) / 2
}

// Total returns the overall duration of the pattern.
func (c Cue) Total() time.Duration {
	var total time.Duration
	for _, segment := range c.Segments {
		total += segment
	}

	return total
}

// Milliseconds returns the segments as integer milliseconds.
func (c Cue) Milliseconds() []int64 {
	result := make([]int64, 0, len(c.Segments))
	for _, segment := range c.Segments {
		result = append(result, segment.Milliseconds())
	}

	return result
}

// String renders the pattern as "on/off/on" milliseconds, e.g. "500ms/250ms/200ms".
func (c Cue) String() string {
	parts := make([]string, 0, len(c.Segments))
	for _, segment := range c.Segments {
		parts = append(parts, segment.String())
	}

	return fmt.Sprintf("[%s]", strings.Join(parts, "/"))
}

// Durations holds the tuning constants that patterns are assembled from.
type Durations struct {
	Long  time.Duration `yaml:"long"`
	Short time.Duration `yaml:"short"`
	Tiny  time.Duration `yaml:"tiny"`
	Huge  time.Duration `yaml:"huge"`
	Pause time.Duration `yaml:"pause"`
}

// DefaultDurations is the stock tuning.
//
//nolint:gochecknoglobals // Read-only defaults.
var DefaultDurations = Durations{
	Long:  500 * time.Millisecond,
	Short: 200 * time.Millisecond,
	Tiny:  100 * time.Millisecond,
	Huge:  1500 * time.Millisecond,
	Pause: 250 * time.Millisecond,
}

// WithDefaults returns d with every unset duration taken from DefaultDurations.
func (d Durations) WithDefaults() Durations {
	fill := func(value *time.Duration, fallback time.Duration) {
		if *value <= 0 {
			*value = fallback
		}
	}

	fill(&d.Long, DefaultDurations.Long)
	fill(&d.Short, DefaultDurations.Short)
	fill(&d.Tiny, DefaultDurations.Tiny)
	fill(&d.Huge, DefaultDurations.Huge)
	fill(&d.Pause, DefaultDurations.Pause)

	return d
}

// Selector maps minutes left to a cue.
type Selector struct {
	Durations Durations
}

// NewSelector returns a selector using d, with unset durations defaulted.
func NewSelector(d Durations) Selector {
	return Selector{Durations: d.WithDefaults()}
}

// thresholds lists the trigger points in descending order.
//
//nolint:gochecknoglobals // Read-only table.
var thresholds = []int{20, 15, 10, 5, 2, 0}

// Thresholds returns the minutes-left values that fire a cue.
func Thresholds() []int {
	result := make([]int, len(thresholds))
	copy(result, thresholds)

	return result
}

// Select returns the cue for minutesLeft. Only exact threshold values match.
func (s Selector) Select(minutesLeft int) (Cue, bool) {
	d := s.Durations

	var segments []time.Duration

	switch minutesLeft {
	case 20:
		segments = []time.Duration{d.Long, d.Pause, d.Long}
	case 15:
		segments = []time.Duration{d.Long, d.Pause, d.Short}
	case 10:
		segments = []time.Duration{d.Long}
	case 5:
		segments = []time.Duration{d.Short}
	case 2:
		segments = []time.Duration{d.Tiny, d.Pause, d.Tiny, d.Pause, d.Tiny}
	case 0:
		segments = []time.Duration{d.Huge}
	default:
		return Cue{}, false
	}

	return Cue{Segments: segments}, true
}
