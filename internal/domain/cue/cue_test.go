package cue

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestSelect_Thresholds checks the shape of every pattern.
func TestSelect_Thresholds(t *testing.T) {
	t.Parallel()

	s := NewSelector(Durations{})
	d := DefaultDurations

	cases := map[int][]time.Duration{
		20: {d.Long, d.Pause, d.Long},
		15: {d.Long, d.Pause, d.Short},
		10: {d.Long},
		5:  {d.Short},
		2:  {d.Tiny, d.Pause, d.Tiny, d.Pause, d.Tiny},
		0:  {d.Huge},
	}

	for minutes, want := range cases {
		got, ok := s.Select(minutes)
		require.True(t, ok, "minutes %d", minutes)
		require.Equal(t, want, got.Segments, "minutes %d", minutes)
	}
}

// TestSelect_PulseCounts keeps single, double and triple patterns apart.
func TestSelect_PulseCounts(t *testing.T) {
	t.Parallel()

	s := NewSelector(DefaultDurations)

	pulses := map[int]int{
		20: 2,
		15: 2,
		10: 1,
		5:  1,
		2:  3,
		0:  1,
	}

	for minutes, want := range pulses {
		got, ok := s.Select(minutes)
		require.True(t, ok, "minutes %d", minutes)
		require.Equal(t, want, got.Pulses(), "minutes %d", minutes)
		// Patterns start and end with the motor on.
		require.Equal(t, 2*want-1, len(got.Segments), "minutes %d", minutes)
	}
}

// TestSelect_FifteenIsLongThenShort checks the two-pulse pattern at 15 minutes.
func TestSelect_FifteenIsLongThenShort(t *testing.T) {
	t.Parallel()

	got, ok := NewSelector(DefaultDurations).Select(15)
	require.True(t, ok)
	require.Equal(t, 2, got.Pulses())
	require.Greater(t, got.Segments[0], got.Segments[2])
}

// TestSelect_NoCue checks that non-threshold values are skipped silently.
func TestSelect_NoCue(t *testing.T) {
	t.Parallel()

	s := NewSelector(DefaultDurations)

	for minutes := -30; minutes <= 1500; minutes++ {
		_, ok := s.Select(minutes)
		require.Equal(t, slices.Contains(Thresholds(), minutes), ok, "minutes %d", minutes)
	}
}

// TestDurations_WithDefaults keeps configured values and fills the rest.
func TestDurations_WithDefaults(t *testing.T) {
	t.Parallel()

	d := Durations{Long: time.Second}.WithDefaults()
	require.Equal(t, time.Second, d.Long)
	require.Equal(t, DefaultDurations.Short, d.Short)
	require.Equal(t, DefaultDurations.Pause, d.Pause)
}

// TestCue_Helpers covers Pulses, Total, Milliseconds and String.
func TestCue_Helpers(t *testing.T) {
	t.Parallel()

	c := Cue{Segments: []time.Duration{500 * time.Millisecond, 250 * time.Millisecond, 200 * time.Millisecond}}
	require.Equal(t, 2, c.Pulses())
	require.Equal(t, 950*time.Millisecond, c.Total())
	require.Equal(t, []int64{500, 250, 200}, c.Milliseconds())
	require.Equal(t, "[500ms/250ms/200ms]", c.String())

	require.Equal(t, 0, Cue{}.Pulses())
	require.Equal(t, []int{20, 15, 10, 5, 2, 0}, Thresholds())
}
