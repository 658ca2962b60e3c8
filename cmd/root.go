package cmd

import (
	"os"

	"travel-ticket-api/core/config"
	"travel-ticket-api/core/logger"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "travel-ticket-api",
	Short:         "Event ticket and photo API",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

// Execute runs the CLI; with no subcommand it starts the server.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("CLI:Execute", "error", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return cfg, nil
}
