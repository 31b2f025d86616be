package publish

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/pinepoint/internal/domain/face"
)

// TestNewPayload carries the cue only when one fired.
func TestNewPayload(t *testing.T) {
	t.Parallel()

	f := face.New(face.WithLocation(time.UTC))

	quiet := NewPayload(f.Compute(time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)))
	require.Equal(t, "09:00", quiet.Clock)
	require.Equal(t, 32, quiet.MinutesLeft)
	require.Nil(t, quiet.CueMillis)

	data, err := json.Marshal(quiet)
	require.NoError(t, err)
	require.NotContains(t, string(data), "cue_ms")

	loud := NewPayload(f.Compute(time.Date(2026, time.October, 16, 9, 22, 0, 0, time.UTC)))
	require.Equal(t, 10, loud.MinutesLeft)
	require.Equal(t, []int64{500}, loud.CueMillis)
}

// TestNop accepts everything.
func TestNop(t *testing.T) {
	t.Parallel()

	var p Publisher = Nop{}
	require.NoError(t, p.Publish(context.Background(), face.Frame{}))
	require.NoError(t, p.Close())
}
