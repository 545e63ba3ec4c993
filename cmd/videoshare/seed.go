package main

import (
	"github.com/spf13/cobra"

	"videoshare/internal/database"
	"videoshare/internal/seed"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the channels and videos tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			// InitDB migrates on open.
			if _, err := database.InitDB(cfg); err != nil {
				return err
			}
			newLogger("migrate").Infof("schema up to date (%s)", cfg.DBDriver)
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo channels and videos",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger("seed")
			svc, err := newCatalog(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer svc.Events.Close()

			channels, videos := seed.Channels(), seed.Videos()
			if err := svc.Seed(cmd.Context(), channels, videos); err != nil {
				return err
			}
			logger.Infof("seeded %d channels and %d videos", len(channels), len(videos))
			return nil
		},
	}
}
