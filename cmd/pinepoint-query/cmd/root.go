package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/pinepoint/internal/logger"
	"github.com/oshokin/pinepoint/internal/service/query"
	"github.com/oshokin/pinepoint/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// at is the instant to ask for.
	at string
	// schedule asks for the boundary table.
	schedule bool
	// wait retries until the server answers.
	wait bool

	// rootCmd represents the base command for querying the face server.
	rootCmd = &cobra.Command{
		Use:   "pinepoint-query [server-address]",
		Short: "Ask the face server for a frame or the timetable.",
		Long: `Connects to pinepoint-server and prints the answer as JSON.

By default the frame for the server's current time is printed. Use --at to
ask for another instant (HH:MM or RFC 3339) and --schedule for the boundary
table and cue thresholds. Server address can be provided as argument or
loaded from configuration file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use server address argument if provided, otherwise rely on config.
			var serverAddress string
			if len(args) > 0 {
				serverAddress = args[0]
			}

			options := &query.Options{
				ConfigPath:    configPath,
				ServerAddress: serverAddress,
				At:            at,
				Schedule:      schedule,
				Wait:          wait,
				Output:        cmd.OutOrStdout(),
			}

			return query.Run(ctx, options)
		},
	}
)

// Execute runs the pinepoint-query CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)
	logger.AttachCobraLevelFlag(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to configuration file")
	rootCmd.Flags().StringVarP(&at, "at", "a", "", "instant to ask for, HH:MM or RFC 3339")
	rootCmd.Flags().BoolVarP(&schedule, "schedule", "s", false, "print the boundary table instead of a frame")
	rootCmd.Flags().BoolVarP(&wait, "wait", "w", false, "retry until the server answers")
}
