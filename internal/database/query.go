package database

import "github.com/brokerage/rms-api/internal/config"

// DBQuery represents a database query with an identifier and dialect specific variants.
type DBQuery struct {
	// ID is the unique identifier for the query.
	ID string `json:"id"`
	// Query is the default query (MySQL syntax).
	Query string `json:"query"`
	// SQLiteQuery is the SQLite-specific query variant.
	SQLiteQuery string `json:"sqlite_query,omitempty"`
}

// GetID returns the unique identifier for the query.
func (d DBQuery) GetID() string {
	return d.ID
}

// GetQuery returns the appropriate query for the specified database type.
// If a database-specific query is not available, it falls back to the default query.
func (d DBQuery) GetQuery(dbType string) string {
	if dbType == config.DatabaseTypeSQLite && d.SQLiteQuery != "" {
		return d.SQLiteQuery
	}
	return d.Query
}
