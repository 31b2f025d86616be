//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestParseInstant covers empty, clock, RFC 3339 and malformed values.
func TestParseInstant(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.October, 16, 23, 30, 0, 0, time.UTC)

	at, err := ParseInstant("", now, time.UTC)
	require.NoError(t, err)
	require.True(t, at.IsZero())

	at, err = ParseInstant("09:32", now, time.UTC)
	require.NoError(t, err)
	require.True(t, time.Date(2026, time.October, 16, 9, 32, 0, 0, time.UTC).Equal(at))

	// The day is taken in the face's zone, not in the zone of now.
	tokyo := time.FixedZone("JST", 9*60*60)
	at, err = ParseInstant("07:00", now, tokyo)
	require.NoError(t, err)
	require.Equal(t, 17, at.Day())
	require.Equal(t, 7, at.Hour())

	at, err = ParseInstant("2026-10-16T09:00:00Z", now, tokyo)
	require.NoError(t, err)
	require.True(t, time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC).Equal(at))

	_, err = ParseInstant("9 am", now, time.UTC)
	require.ErrorIs(t, err, ErrInvalidInstant)

	_, err = ParseInstant("25:00", now, time.UTC)
	require.ErrorIs(t, err, ErrInvalidInstant)
}
