package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/brokerage/rms-api/internal/config"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// DB holds the record store connection
type DB struct {
	*sqlx.DB
	logger *logrus.Logger
}

// Initialize opens the configured record store and verifies it is reachable
func Initialize(cfg *config.DatabaseConfig, logger *logrus.Logger) (*DB, error) {
	logger.WithFields(logrus.Fields{
		"type":     cfg.Type,
		"hostname": cfg.Hostname,
		"port":     cfg.Port,
		"database": cfg.Database,
		"path":     cfg.Path,
	}).Info("Connecting to database...")

	db, err := sqlx.Open(cfg.Type, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.Type == config.DatabaseTypeSQLite {
		// sqlite allows a single writer
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Successfully connected to database")

	return New(db, logger), nil
}

// New wraps an already opened connection
func New(db *sqlx.DB, logger *logrus.Logger) *DB {
	return &DB{
		DB:     db,
		logger: logger,
	}
}

// Dialect returns the driver name used to pick dialect specific queries
func (db *DB) Dialect() string {
	return db.DriverName()
}

// Logger returns the logger bound to this connection
func (db *DB) Logger() *logrus.Logger {
	return db.logger
}

// Close closes the database connection
func (db *DB) Close() error {
	if db.DB != nil {
		db.logger.Info("Closing database connection...")
		return db.DB.Close()
	}
	return nil
}

// HealthCheck checks if the database is healthy
func (db *DB) HealthCheck(ctx context.Context) error {
	if db.DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

// Transaction is a unit of work on the record store. Every statement of a
// workflow operation must run through it.
type Transaction struct {
	*sqlx.Tx
	logger *logrus.Logger
}

// BeginTx opens a transaction. MySQL runs at READ COMMITTED so that locking
// reads see the latest committed row version.
func (db *DB) BeginTx(ctx context.Context) (*Transaction, error) {
	var opts *sql.TxOptions
	if db.Dialect() == config.DatabaseTypeMySQL {
		opts = &sql.TxOptions{Isolation: sql.LevelReadCommitted}
	}

	tx, err := db.DB.BeginTxx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &Transaction{Tx: tx, logger: db.logger}, nil
}

// Commit commits the transaction
func (tx *Transaction) Commit() error {
	if err := tx.Tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback discards the transaction. Rolling back a finished transaction is a no-op.
func (tx *Transaction) Rollback() error {
	if err := tx.Tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// WithTransaction runs fn in a transaction, committing when fn succeeds and
// rolling back when it fails or panics.
func (db *DB) WithTransaction(ctx context.Context, fn func(*Transaction) error) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			db.logger.WithError(rbErr).Error("Failed to rollback transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		db.logger.WithError(err).Warn("Transaction commit failed")
		return err
	}
	return nil
}
