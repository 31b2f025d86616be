package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/pinepoint/internal/logger"
	"github.com/oshokin/pinepoint/internal/service/watch"
	"github.com/oshokin/pinepoint/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// snapshotPath receives the latest screen image.
	snapshotPath string
	// dryRun disables the speaker and the MQTT feed.
	dryRun bool
	// force skips the single-instance check.
	force bool

	// rootCmd represents the base command for running the watch face.
	rootCmd = &cobra.Command{
		Use:   "pinepoint",
		Short: "Run the period countdown watch face.",
		Long: `Runs the watch face: a grid of cells that empties as the current period
runs out, a digital clock and vibration cues at 20, 15, 10, 5, 2 and 0 minutes left.

The face redraws on every wall-clock minute. The frame is printed to the
terminal, drawn to an in-memory 144x168 screen and optionally saved as a BMP
or PNG snapshot. Cues are logged, played on the speaker when enabled, and
frames are published to MQTT when a broker is configured.

Without --config the compiled-in timetable and local time zone are used.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &watch.Options{
				ConfigPath:   configPath,
				SnapshotPath: snapshotPath,
				DryRun:       dryRun,
				Force:        force,
			}

			return watch.Run(ctx, options)
		},
	}
)

// Execute runs the pinepoint CLI and exits with non-zero status on error.
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
	rootCmd.Flags().StringVarP(&snapshotPath, "snapshot", "s", "", "write the screen to this .bmp or .png file on every tick")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "log cues and frames only, without speaker or MQTT")
	rootCmd.Flags().BoolVarP(&force, "force", "f", false, "start even if another watch face is running")
}
