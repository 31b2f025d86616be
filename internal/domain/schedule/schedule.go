package schedule

import (
	"errors"
	"fmt"
	"time"
)

// MinutesPerDay is the length of the cyclic day the table wraps around.
const MinutesPerDay = 24 * 60

var (
	// ErrEmptyBoundaries is returned when a table holds no boundaries.
	ErrEmptyBoundaries = errors.New("boundary table is empty")
	// ErrBoundaryOutOfRange is returned when a boundary lies outside one day.
	ErrBoundaryOutOfRange = errors.New("boundary is out of range")
	// ErrBoundariesNotIncreasing is returned when boundaries are not strictly increasing.
	ErrBoundariesNotIncreasing = errors.New("boundaries are not strictly increasing")
)

// Clock is a read-only time-of-day snapshot.
type Clock struct {
	// Hour is in the range 0-23.
	Hour int
	// Minute is in the range 0-59.
	Minute int
}

// ClockOf extracts the time of day from t in t's own location.
func ClockOf(t time.Time) Clock {
	return Clock{
		Hour:   t.Hour(),
		Minute: t.Minute(),
	}
}

// String renders the clock as HH:MM.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// MinutesSinceMidnight converts a clock into minutes since midnight.
func MinutesSinceMidnight(c Clock) int {
	return c.Hour*60 + c.Minute
}

// Boundaries is an ordered table of minutes since midnight at which periods end.
type Boundaries []int

// DefaultBoundaries is the compiled-in school day: the morning periods end at
// 09:32, 10:23 and 11:18, the last one at 15:05.
//
//nolint:gochecknoglobals // Static table, never mutated.
var DefaultBoundaries = Boundaries{572, 623, 678, 758, 813, 860, 905}

// NewBoundaries validates values and returns them as a table.
func NewBoundaries(values ...int) (Boundaries, error) {
	if len(values) == 0 {
		return nil, ErrEmptyBoundaries
	}

	for i, v := range values {
		if v < 0 || v >= MinutesPerDay {
			return nil, fmt.Errorf("boundary %d (%d): %w", i, v, ErrBoundaryOutOfRange)
		}

		if i > 0 && v <= values[i-1] {
			return nil, fmt.Errorf("boundary %d (%d) after %d: %w", i, v, values[i-1], ErrBoundariesNotIncreasing)
		}
	}

	result := make(Boundaries, len(values))
	copy(result, values)

	return result, nil
}

// MinutesLeft returns the minutes from now until the next boundary.
// A boundary that equals now counts as the next one, so the result is 0 at
// the exact end of a period.
func MinutesLeft(b Boundaries, now Clock) int {
	m := MinutesSinceMidnight(now)

	for _, boundary := range b {
		if boundary >= m {
			return boundary - m
		}
	}

	return (MinutesPerDay + b[0]) - m
}

// Next returns the boundary the countdown is heading to.
func (b Boundaries) Next(now Clock) int {
	m := MinutesSinceMidnight(now)

	for _, boundary := range b {
		if boundary >= m {
			return boundary
		}
	}

	return b[0]
}

// Clocks returns the boundaries as times of day.
func (b Boundaries) Clocks() []Clock {
	result := make([]Clock, 0, len(b))
	for _, boundary := range b {
		result = append(result, Clock{Hour: boundary / 60, Minute: boundary % 60})
	}

	return result
}
