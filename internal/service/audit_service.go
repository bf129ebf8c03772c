package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/brokerage/rms-api/internal/dao"
	"github.com/brokerage/rms-api/internal/system/error/serviceerror"
	"github.com/brokerage/rms-api/internal/workflow"
)

// AuditService reads the authorization audit trail across entities
type AuditService struct {
	trail *workflow.AuditTrail
}

// NewAuditService creates a new AuditService
func NewAuditService(trail *workflow.AuditTrail) *AuditService {
	return &AuditService{trail: trail}
}

// History returns every maker action and checker decision recorded for entity/key, oldest first.
// key is the string form of the business key, composite parts joined by "|".
func (s *AuditService) History(ctx context.Context, entity, key string) ([]workflow.AuditEntry, error) {
	if !dao.IsEntity(entity) {
		return nil, serviceerror.CustomServiceError(serviceerror.ValidationError,
			fmt.Sprintf("unknown entity %q", entity))
	}
	if strings.TrimSpace(key) == "" {
		return nil, serviceerror.CustomServiceError(serviceerror.ValidationError, "key is required")
	}

	entries, err := s.trail.History(ctx, entity, key)
	if err != nil {
		return nil, serviceerror.WrapServiceError(serviceerror.StoreError, err, "failed to load history")
	}
	return entries, nil
}
