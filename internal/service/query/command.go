package query

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/pinepoint/internal/config"
	"github.com/oshokin/pinepoint/internal/logger"
	"github.com/oshokin/pinepoint/internal/service/common"
)

// Options configures a single query.
type Options struct {
	// ConfigPath to YAML settings file; empty uses defaults.
	ConfigPath string
	// ServerAddress overrides server address from config when specified.
	ServerAddress string
	// At is the instant to ask for, HH:MM or RFC 3339; empty asks for the server's now.
	At string
	// Schedule asks for the boundary table instead of a frame.
	Schedule bool
	// Wait keeps retrying until the server answers or ctx is canceled.
	Wait bool
	// Output receives the JSON answer; nil means stdout.
	Output io.Writer
}

// defaultRetryInterval defines the delay between attempts in wait mode.
const defaultRetryInterval = 1 * time.Second

// Run performs the query and prints the answer.
//
//nolint:cyclop // Retry loop mirrors the single attempt.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "pinepoint-query")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	serverAddress := cfg.ServerAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	at, err := common.ParseInstant(opts.At, time.Now(), loc)
	if err != nil {
		return err
	}

	client, err := common.Dial(ctx, serverAddress, common.WithCallTimeout(cfg.Timeout))
	if err != nil {
		return err
	}

	defer func() {
		_ = client.Close()
	}()

	output := opts.Output
	if output == nil {
		output = os.Stdout
	}

	attempt := func() (*structpb.Struct, error) {
		if opts.Schedule {
			return client.GetSchedule(ctx)
		}

		return client.GetFrame(ctx, at)
	}

	answer, err := attempt()
	if err != nil && opts.Wait {
		ticker := time.NewTicker(defaultRetryInterval)
		defer ticker.Stop()

		for err != nil {
			logger.WarnKV(ctx, "Face server did not answer, retrying", "server_address", serverAddress, "error", err)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				answer, err = attempt()
			}
		}
	}

	if err != nil {
		return err
	}

	return writeAnswer(output, answer)
}

// writeAnswer writes the answer as indented JSON.
func writeAnswer(w io.Writer, answer *structpb.Struct) error {
	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(answer)
	if err != nil {
		return fmt.Errorf("marshal answer: %w", err)
	}

	if _, err = fmt.Fprintln(w, string(data)); err != nil {
		return fmt.Errorf("write answer: %w", err)
	}

	return nil
}
