package database

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/brokerage/rms-api/internal/config"
	"github.com/sirupsen/logrus"
)

// OpenTestDB opens a migrated sqlite record store in a temporary directory.
func OpenTestDB(t *testing.T) *DB {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &config.DatabaseConfig{
		Type: config.DatabaseTypeSQLite,
		Path: filepath.Join(t.TempDir(), "rms.sqlite"),
	}

	db, err := Initialize(cfg, logger)
	if err != nil {
		t.Fatalf("open test sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := db.RunMigrations(); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	return db
}
