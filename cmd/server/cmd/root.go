// Package cmd holds the cobra commands of the server binary.
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"revenue-reconciliation-backend/internal/config"
	"revenue-reconciliation-backend/internal/logging"
)

var (
	settings  *config.Settings
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Revenue reconciliation engine",
	Long: `Reconciles a billing ledger against a payment processor export and
reports revenue anomalies with their impact and confidence.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		settings = config.Load()
		if cmd.Flags().Changed("log-level") {
			settings.LogLevel = logLevel
		}
		if cmd.Flags().Changed("log-format") {
			settings.LogFormat = logFormat
		}
		logging.Configure(settings.LogLevel, settings.LogFormat)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "auto", "log format (auto, json, console)")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
