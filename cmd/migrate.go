package cmd

import (
	"github.com/spf13/cobra"

	"adpace/internal/config"
	"adpace/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply embedded database migrations",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return db.Migrate(cfg.Psql.Addr.String())
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
