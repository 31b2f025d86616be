package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/oshokin/pinepoint/internal/config"
	"github.com/oshokin/pinepoint/internal/logger"
	"github.com/oshokin/pinepoint/internal/publish"
	"github.com/oshokin/pinepoint/internal/publish/mqtt"
	"github.com/oshokin/pinepoint/internal/render"
	"github.com/oshokin/pinepoint/internal/service/common"
	"github.com/oshokin/pinepoint/internal/vibe"
)

// Options controls the watch-face process.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file; empty uses defaults.
	ConfigPath string
	// Output receives the terminal face; nil means stdout.
	Output io.Writer
	// SnapshotPath receives the latest screen image (.bmp or .png).
	SnapshotPath string
	// DryRun logs cues and frames only: no speaker, no MQTT.
	DryRun bool
	// Force skips the single-instance check.
	Force bool
}

// ErrAlreadyRunning indicates another watch face process is active on this host.
var ErrAlreadyRunning = errors.New("another watch face is already running")

// Run starts the watch face and blocks until ctx is canceled.
//
//nolint:cyclop // Linear wiring of optional outputs.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "pinepoint")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if !opts.Force {
		if err = ensureSingleInstance(ctx); err != nil {
			return err
		}
	}

	watchFace, err := cfg.Face()
	if err != nil {
		return fmt.Errorf("build face: %w", err)
	}

	palette := render.DefaultPalette
	if cfg.InvertColors {
		palette = palette.Inverted()
	}

	vibrators := vibe.Multi{vibe.LogVibrator{}}

	var publisher publish.Publisher = publish.Nop{}

	if !opts.DryRun {
		if cfg.Speaker.Enabled {
			speaker, speakerErr := vibe.NewSpeaker(cfg.Speaker.SampleRate, cfg.Speaker.FrequencyHz)
			if speakerErr != nil {
				return fmt.Errorf("open speaker: %w", speakerErr)
			}

			defer func() {
				_ = speaker.Close()
			}()

			vibrators = append(vibrators, speaker)
		}

		if cfg.MQTT.BrokerAddress != "" {
			publisher, err = mqtt.New(mqtt.Config{
				BrokerAddress: cfg.MQTT.BrokerAddress,
				Topic:         cfg.MQTT.Topic,
				ClientID:      cfg.MQTT.ClientID,
				Username:      cfg.MQTT.Username,
				Password:      cfg.MQTT.Password,
				Timeout:       cfg.Timeout,
			})
			if err != nil {
				return fmt.Errorf("create mqtt publisher: %w", err)
			}
		}
	}

	defer func() {
		_ = publisher.Close()
	}()

	output := opts.Output
	if output == nil {
		output = os.Stdout
	}

	host := NewHost(HostConfig{
		Face:         watchFace,
		Renderer:     render.NewRenderer(palette),
		Screen:       render.NewScreen(),
		Vibrator:     vibrators,
		Publisher:    publisher,
		Output:       output,
		SnapshotPath: opts.SnapshotPath,
	})

	logger.InfoKV(ctx, "Starting watch face",
		"boundaries", watchFace.Boundaries(),
		"time_zone", watchFace.Location().String(),
		"clock_format", cfg.ClockFormat,
		"dry_run", opts.DryRun,
	)

	return host.Loop(ctx, nil)
}

// ensureSingleInstance fails when the same binary already runs on this host.
func ensureSingleInstance(ctx context.Context) error {
	executable := common.CurrentExecutable()

	pids, err := common.FindOtherInstances(executable)
	if err != nil {
		// Not fatal: some platforms restrict process listing.
		logger.WarnKV(ctx, "Unable to check for other instances", "error", err)

		return nil
	}

	if len(pids) > 0 {
		return fmt.Errorf("%w: %s (pid %v)", ErrAlreadyRunning, executable, pids)
	}

	return nil
}
