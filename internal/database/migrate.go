package database

import (
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
)

// EmbedMigrations contains the embedded SQL migration files.
//
//go:embed migrations/*.sql
var EmbedMigrations embed.FS

// RunMigrations executes all pending goose migrations against the record store.
func (db *DB) RunMigrations() error {
	goose.SetBaseFS(EmbedMigrations)
	goose.SetLogger(gooseLogger{db.logger})

	if err := goose.SetDialect(db.Dialect()); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}

	if err := goose.Up(db.DB.DB, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}

// MigrationVersion returns the currently applied schema version.
func (db *DB) MigrationVersion() (int64, error) {
	goose.SetBaseFS(EmbedMigrations)
	if err := goose.SetDialect(db.Dialect()); err != nil {
		return 0, fmt.Errorf("goose set dialect: %w", err)
	}

	version, err := goose.GetDBVersion(db.DB.DB)
	if err != nil {
		return 0, fmt.Errorf("goose version: %w", err)
	}
	return version, nil
}

type gooseLogger struct {
	logger *logrus.Logger
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Fatalf(format, v...)
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Debugf(format, v...)
}
