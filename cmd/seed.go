package cmd

import (
	"github.com/spf13/cobra"

	"adpace/internal/config"
	"adpace/internal/db"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo campaigns and delivery data",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		pool, err := db.NewPostgresPool(ctx, cfg.Psql)
		if err != nil {
			return err
		}
		defer pool.Close()
		return db.Seed(ctx, pool)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
