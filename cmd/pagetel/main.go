// Package main implements the pagetel CLI, which starts a telemetry session
// from the environment and replays recorded page events into it.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time.
var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pagetel",
	Short: "Client-side telemetry pipeline for page-hosted applications",
	Long: `pagetel builds correlated trace, metric and log pipelines for a page and
exports them over OTLP/HTTP to the page origin.

Identity and tuning come from the environment (APP_NAME, APP_VERSION,
BUILD_MODE, OTLP_API_KEY, OTEL_*_EXPORTER, PAGETEL_*).`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(instrumentsCmd)
	rootCmd.AddCommand(checkCmd)
}
