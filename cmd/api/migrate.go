package main

import (
	"errors"

	pg "animal-shelter/internal/adapters/storage/postgres"
	"animal-shelter/internal/platform/logger"

	"github.com/spf13/cobra"
)

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync(log)

	if cfg.Database.DSN == "" {
		return errors.New("migrate: database.dsn is required")
	}
	db, err := pg.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := pg.Migrate(cmd.Context(), db); err != nil {
		return err
	}
	log.Info("schema applied", nil)
	return nil
}
