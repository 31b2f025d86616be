package timetable

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/oshokin/pinepoint/internal/domain/schedule"
)

// statusCancelled is the iCalendar STATUS value of a cancelled event.
const statusCancelled = "CANCELLED"

// ErrNoEvents is returned when the calendar holds no usable class endings.
var ErrNoEvents = errors.New("timetable has no events with an end time")

//nolint:gochecknoglobals // Compiled once.
var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// ImportFile reads an iCalendar file and imports its boundaries.
func ImportFile(path string, loc *time.Location) (schedule.Boundaries, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open timetable: %w", err)
	}

	defer func() {
		_ = f.Close()
	}()

	return Import(f, loc)
}

// Import decodes every calendar in r and returns the sorted, de-duplicated
// end times of its events as minutes since midnight in loc.
func Import(r io.Reader, loc *time.Location) (schedule.Boundaries, error) {
	if loc == nil {
		loc = time.Local
	}

	var (
		decoder = ical.NewDecoder(r)
		seen    = make(map[int]struct{})
		values  []int
	)

	for {
		cal, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("decode calendar: %w", err)
		}

		for _, event := range cal.Events() {
			end, ok := eventEnd(event.Component, loc)
			if !ok {
				continue
			}

			if _, dup := seen[end]; dup {
				continue
			}

			seen[end] = struct{}{}
			values = append(values, end)
		}
	}

	if len(values) == 0 {
		return nil, ErrNoEvents
	}

	slices.Sort(values)

	return schedule.NewBoundaries(values...)
}

// eventEnd returns the end of a class in minutes since midnight.
// Cancelled events, events without DTEND and all-day events are skipped.
func eventEnd(comp *ical.Component, loc *time.Location) (int, bool) {
	if isCancelled(comp) {
		return 0, false
	}

	endProp := comp.Props.Get(ical.PropDateTimeEnd)
	if endProp == nil || isDateOnly(endProp) {
		return 0, false
	}

	end, err := endProp.DateTime(loc)
	if err != nil {
		return 0, false
	}

	if startProp := comp.Props.Get(ical.PropDateTimeStart); startProp != nil {
		if isDateOnly(startProp) {
			return 0, false
		}

		// A timed event spanning a whole day or more is not a class.
		if start, startErr := startProp.DateTime(loc); startErr == nil && end.Sub(start) >= 24*time.Hour {
			return 0, false
		}
	}

	return schedule.MinutesSinceMidnight(schedule.ClockOf(end.In(loc))), true
}

// isDateOnly reports whether prop holds a DATE rather than a DATE-TIME,
// which marks an all-day event.
func isDateOnly(prop *ical.Prop) bool {
	return prop.ValueType() == ical.ValueDate
}

// isCancelled reports whether the event was called off, either by STATUS or
// by a title such as "Cancelled: Maths".
func isCancelled(comp *ical.Component) bool {
	if statusProp := comp.Props.Get(ical.PropStatus); statusProp != nil &&
		strings.EqualFold(statusProp.Value, statusCancelled) {
		return true
	}

	summaryProp := comp.Props.Get(ical.PropSummary)
	if summaryProp == nil {
		return false
	}

	title := nonAlphanumeric.ReplaceAllString(strings.ToLower(summaryProp.Value), "")

	return strings.HasPrefix(title, "cancelled") || strings.HasPrefix(title, "canceled")
}
