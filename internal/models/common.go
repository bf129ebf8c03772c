package models

import (
	"strings"
)

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Record status codes shared by reference data
const (
	StatusActive    = "A"
	StatusInactive  = "I"
	StatusSuspended = "S"
)

// KeySeparator joins the parts of a composite key in its string form
const KeySeparator = "|"

func joinKey(parts ...string) string {
	return strings.Join(parts, KeySeparator)
}
