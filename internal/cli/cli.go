package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ofarias/mega-history/internal/logger"
	"github.com/ofarias/mega-history/internal/pipeline"
	"github.com/ofarias/mega-history/internal/scraper"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagOutDir    string
	flagSourceURL string
	flagTimeout   time.Duration
	flagLogLevel  string
	flagLogFormat string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mega-history",
		Short: "Download and export the Mega-Sena draws history",
		Long: `Downloads the full Mega-Sena draws history from the lottery operator,
verifies the draw sequence is complete and exports archival (HTML, JSON,
CSV) and loader-ready artifacts for database ingestion.`,
		RunE: runPipeline,
	}

	cmd.Flags().StringVar(&flagOutDir, "out-dir", "scraper-data", "Directory for run artifacts")
	cmd.Flags().StringVar(&flagSourceURL, "source-url", "", "Override the history endpoint URL")
	cmd.Flags().DurationVar(&flagTimeout, "timeout", scraper.Timeout, "HTTP timeout for the history fetch")
	cmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn or error")
	cmd.Flags().StringVar(&flagLogFormat, "log-format", "json", "Log output format: json or text")

	return cmd
}

// runPipeline is the main command logic
func runPipeline(cmd *cobra.Command, args []string) error {
	logger.SetDefault(logger.NewWithFormat(
		logger.ParseLevel(flagLogLevel), logger.ParseFormat(flagLogFormat), os.Stderr))

	res, err := pipeline.Run(context.Background(), pipeline.Options{
		SourceURL: flagSourceURL,
		OutDir:    flagOutDir,
		Timeout:   flagTimeout,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Last draw: %d on %s.\n", res.LastDraw, res.LastDrawDate)
	fmt.Printf("Exported %d draws and %d winner locations in %s.\n",
		res.Draws, res.Locations, res.Elapsed.Round(10*time.Millisecond))
	if res.DroppedRows > 0 || res.Anomalies > 0 {
		fmt.Printf("Recorded %d dropped rows and %d field anomalies.\n",
			res.DroppedRows, res.Anomalies)
	}
	for _, path := range res.Artifacts {
		fmt.Printf("  %s\n", path)
	}

	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
