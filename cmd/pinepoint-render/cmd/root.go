package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/pinepoint/internal/logger"
	"github.com/oshokin/pinepoint/internal/service/render"
	"github.com/oshokin/pinepoint/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// at is the instant to draw.
	at string
	// printText mirrors the frame to stdout.
	printText bool

	// rootCmd represents the base command for rendering a single frame.
	rootCmd = &cobra.Command{
		Use:   "pinepoint-render <output.bmp|output.png>",
		Short: "Draw one watch face frame to an image file.",
		Long: `Computes the frame for the given instant and writes the 144x168 screen to
a BMP or PNG file, picked by extension.

The instant is HH:MM on today's date in the configured time zone, or a full
RFC 3339 timestamp. Without --at the current time is drawn.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options := &render.Options{
				ConfigPath: configPath,
				At:         at,
				OutputPath: args[0],
			}

			if printText {
				options.Text = cmd.OutOrStdout()
			}

			return render.Run(context.Background(), options)
		},
	}
)

// Execute runs the pinepoint-render CLI and exits with non-zero status on error.
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
	rootCmd.Flags().StringVarP(&at, "at", "a", "", "instant to draw, HH:MM or RFC 3339")
	rootCmd.Flags().BoolVarP(&printText, "text", "t", false, "also print the frame to stdout")
}
