package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuditIDs(t *testing.T) {
	id := NewAuditID()
	assert.True(t, IsAuditID(id))
	assert.NotEqual(t, id, NewAuditID())

	assert.False(t, IsAuditID(NewCorrelationID()))
	assert.False(t, IsAuditID("AUD-not-a-uuid"))
	assert.False(t, IsAuditID(""))
}
