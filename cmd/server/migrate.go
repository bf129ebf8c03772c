package main

import (
	"fmt"

	"github.com/brokerage/rms-api/internal/database"
)

func runMigrate(configPath string) error {
	cfg, logger, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	db, err := database.Initialize(&cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	version, err := db.MigrationVersion()
	if err != nil {
		return err
	}
	logger.WithField("version", version).Info("Database schema is up to date")
	return nil
}
