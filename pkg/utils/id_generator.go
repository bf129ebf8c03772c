package utils

import (
	"strings"

	"github.com/google/uuid"
)

const auditIDPrefix = "AUD-"

// NewAuditID returns a unique id for an authorization audit row
func NewAuditID() string {
	return auditIDPrefix + uuid.NewString()
}

// IsAuditID reports whether id has the shape produced by NewAuditID
func IsAuditID(id string) bool {
	rest, ok := strings.CutPrefix(id, auditIDPrefix)
	if !ok {
		return false
	}
	_, err := uuid.Parse(rest)
	return err == nil
}

// NewCorrelationID returns an id for a request that arrived without one
func NewCorrelationID() string {
	return uuid.NewString()
}
