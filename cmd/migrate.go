package cmd

import (
	"fmt"

	"travel-ticket-api/core/constants"
	"travel-ticket-api/core/database"
	"travel-ticket-api/core/logger"

	"github.com/spf13/cobra"
)

var migrateSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.EventSource != constants.EventSourceDatabase {
			return fmt.Errorf("migrations need EVENT_SOURCE=%s", constants.EventSourceDatabase)
		}
		if err := database.MigrateUp(cfg.Database); err != nil {
			return err
		}
		logger.Info("CLI:Migrate:Up:Done", "driver", cfg.Database.Driver)
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the given number of migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if migrateSteps < 1 {
			return fmt.Errorf("--steps must be at least 1")
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.EventSource != constants.EventSourceDatabase {
			return fmt.Errorf("migrations need EVENT_SOURCE=%s", constants.EventSourceDatabase)
		}
		if err := database.MigrateDown(cfg.Database, migrateSteps); err != nil {
			return err
		}
		logger.Info("CLI:Migrate:Down:Done", "driver", cfg.Database.Driver, "steps", migrateSteps)
		return nil
	},
}

func init() {
	migrateDownCmd.Flags().IntVar(&migrateSteps, "steps", 1, "number of migrations to roll back")
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
}
