package vibe

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/oshokin/pinepoint/internal/domain/cue"
	"github.com/oshokin/pinepoint/internal/logger"
)

// amplitude is the square-wave peak, about half of full scale.
const amplitude = 1 << 14

var (
	// errSpeakerClosed is returned when a cue arrives after Close.
	errSpeakerClosed = errors.New("speaker is closed")
	// errInvalidTone is returned for a non-positive sample rate or frequency.
	errInvalidTone = errors.New("sample rate and frequency must be positive")
)

// Speaker plays cues as beeps on the default audio device.
// Only one Speaker may exist per process: oto allows a single context.
type Speaker struct {
	otoCtx      *oto.Context
	sampleRate  int
	frequencyHz int

	// mu protects player and closed.
	mu     sync.Mutex
	player *oto.Player
	closed bool
}

// NewSpeaker opens the audio device and waits until it is ready.
func NewSpeaker(sampleRate, frequencyHz int) (*Speaker, error) {
	if sampleRate <= 0 || frequencyHz <= 0 {
		return nil, errInvalidTone
	}

	options := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}

	otoCtx, ready, err := oto.NewContext(options)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}

	// Wait for the hardware audio devices to be ready.
	<-ready

	return &Speaker{
		otoCtx:      otoCtx,
		sampleRate:  sampleRate,
		frequencyHz: frequencyHz,
	}, nil
}

// Enqueue starts playing the cue, replacing any cue still playing.
func (s *Speaker) Enqueue(ctx context.Context, c cue.Cue) error {
	pcm := Synthesize(c, s.sampleRate, s.frequencyHz)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errSpeakerClosed
	}

	s.stopLocked(ctx)

	s.player = s.otoCtx.NewPlayer(bytes.NewReader(pcm))
	s.player.Play()

	logger.DebugKV(ctx, "Speaker cue started", "pattern", c.String())

	return nil
}

// Close stops playback. Further cues are rejected.
func (s *Speaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked(context.Background())
	s.closed = true

	return nil
}

// stopLocked pauses and releases the current player. Callers hold mu.
func (s *Speaker) stopLocked(ctx context.Context) {
	if s.player == nil {
		return
	}

	s.player.Pause()

	if err := s.player.Close(); err != nil {
		logger.WarnKV(ctx, "Failed to close audio player", "error", err)
	}

	s.player = nil
}

// Synthesize renders a cue as mono signed 16-bit little-endian PCM:
// a square wave during on segments and silence during off segments.
func Synthesize(c cue.Cue, sampleRate, frequencyHz int) []byte {
	if sampleRate <= 0 || frequencyHz <= 0 {
		return nil
	}

	var (
		total     = samples(c.Total(), sampleRate)
		pcm       = make([]byte, 0, total*2)
		halfCycle = max(1, sampleRate/(2*frequencyHz))
	)

	for i, segment := range c.Segments {
		on := i%2 == 0

		for n := range samples(segment, sampleRate) {
			var value int16

			if on {
				value = amplitude
				if (n/halfCycle)%2 == 1 {
					value = -amplitude
				}
			}

			pcm = binary.LittleEndian.AppendUint16(pcm, uint16(value)) //nolint:gosec // Two's complement on purpose.
		}
	}

	return pcm
}

// samples converts a duration into a sample count.
func samples(d time.Duration, sampleRate int) int {
	return int(d * time.Duration(sampleRate) / time.Second)
}
