//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInstant is returned for a value that is neither HH:MM nor RFC 3339.
var ErrInvalidInstant = errors.New("instant must be HH:MM or RFC 3339")

// ParseInstant reads a command-line instant. HH:MM names that wall-clock
// minute on the day of now in loc; RFC 3339 is taken as is. Empty returns
// the zero time.
func ParseInstant(value string, now time.Time, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}

	if at, err := time.Parse(time.RFC3339, value); err == nil {
		return at, nil
	}

	clock, err := time.Parse("15:04", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidInstant, value)
	}

	day := now.In(loc)

	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, loc), nil
}
