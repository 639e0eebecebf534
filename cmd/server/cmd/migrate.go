package cmd

import (
	"github.com/spf13/cobra"

	"revenue-reconciliation-backend/internal/config"
	"revenue-reconciliation-backend/internal/logging"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := config.InitDB(settings)
		if err != nil {
			return err
		}
		if err := config.Migrate(db); err != nil {
			return err
		}
		logging.Info().Msg("database migrated")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
