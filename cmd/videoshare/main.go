package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"videoshare/internal/config"
)

var cfg config.Config

func main() {
	root := &cobra.Command{
		Use:          "videoshare",
		Short:        "Video sharing service: catalog API, browser UI and tooling",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil {
				log.Printf("Warning: .env file not found")
			}
			var err error
			cfg, err = config.LoadConfig()
			return err
		},
	}
	root.AddCommand(serveCmd(), migrateCmd(), seedCmd())

	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
