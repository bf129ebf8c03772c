package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/brokerage/rms-api/internal/dao"
	"github.com/brokerage/rms-api/internal/database"
	"github.com/brokerage/rms-api/internal/models"
	"github.com/brokerage/rms-api/internal/system/error/serviceerror"
	"github.com/brokerage/rms-api/internal/workflow"
)

// MaxBulkItems bounds the size of a single bulk request
const MaxBulkItems = 500

// CompanyService runs the maker-checker cycle for companies and adds bulk staging
type CompanyService struct {
	*workflow.Service[models.CompanyKey, models.CompanyFields, models.Company, *models.Company]
	db     *database.DB
	logger *logrus.Logger
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(deps workflow.Deps) *CompanyService {
	logger := deps.Logger
	if logger == nil {
		logger = deps.DB.Logger()
	}
	return &CompanyService{
		Service: workflow.NewService(deps, dao.NewCompanyStore(deps.DB), validateCompany),
		db:      deps.DB,
		logger:  logger,
	}
}

type bulkMode int

const (
	bulkCreate bulkMode = iota
	bulkUpdate
	bulkUpsert
)

// BulkCreate stages every company as a new record. Either all items are staged or none.
func (s *CompanyService) BulkCreate(ctx context.Context, items []*models.Company, maker workflow.Actor) ([]*models.Company, error) {
	return s.bulk(ctx, bulkCreate, items, maker)
}

// BulkUpdate stages a change of every company. Either all items are staged or none.
func (s *CompanyService) BulkUpdate(ctx context.Context, items []*models.Company, maker workflow.Actor) ([]*models.Company, error) {
	return s.bulk(ctx, bulkUpdate, items, maker)
}

// BulkUpsert stages an update for companies that exist and a create for the rest.
// Either all items are staged or none.
func (s *CompanyService) BulkUpsert(ctx context.Context, items []*models.Company, maker workflow.Actor) ([]*models.Company, error) {
	return s.bulk(ctx, bulkUpsert, items, maker)
}

func (s *CompanyService) bulk(ctx context.Context, mode bulkMode, items []*models.Company, maker workflow.Actor) ([]*models.Company, error) {
	if err := s.checkBatch(items); err != nil {
		s.Observe(bulkOp(mode), err)
		return nil, err
	}

	out := make([]*models.Company, 0, len(items))
	ops := make([]string, 0, len(items))
	failedOp := bulkOp(mode)

	err := s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		for i, item := range items {
			op, err := s.resolveOp(ctx, tx, mode, item)
			if err != nil {
				return serviceerror.WithPrefix(err, itemLabel(i))
			}

			var rec *models.Company
			switch op {
			case workflow.OpCreate:
				rec, err = s.CreateTx(ctx, tx, item, maker)
			default:
				rec, err = s.UpdateTx(ctx, tx, item.RecordKey(), item, maker)
			}
			if err != nil {
				failedOp = op
				return serviceerror.WithPrefix(err, itemLabel(i))
			}
			out = append(out, rec)
			ops = append(ops, op)
		}
		return nil
	})
	if err != nil {
		s.Observe(failedOp, err)
		s.logger.WithError(err).WithField("items", len(items)).Warn("Bulk company request rolled back")
		return nil, serviceerror.ToServiceError(err)
	}

	for _, op := range ops {
		s.Observe(op, nil)
	}
	s.logger.WithFields(logrus.Fields{
		"items": len(out),
		"actor": maker.UserID,
	}).Info("Bulk company request staged")
	return out, nil
}

// checkBatch validates every item before any row is touched
func (s *CompanyService) checkBatch(items []*models.Company) error {
	if len(items) == 0 {
		return serviceerror.CustomServiceError(serviceerror.ValidationError, "at least one item is required")
	}
	if len(items) > MaxBulkItems {
		return serviceerror.CustomServiceError(serviceerror.ValidationError,
			fmt.Sprintf("at most %d items are allowed", MaxBulkItems))
	}

	seen := make(map[models.CompanyKey]int, len(items))
	for i, item := range items {
		if item == nil {
			return serviceerror.CustomServiceError(serviceerror.ValidationError, itemLabel(i)+": record is required")
		}
		if err := item.RecordKey().Validate(); err != nil {
			return serviceerror.CustomServiceError(serviceerror.ValidationError, itemLabel(i)+": "+err.Error())
		}
		if err := validateCompany(item.Payload()); err != nil {
			return serviceerror.CustomServiceError(serviceerror.ValidationError, itemLabel(i)+": "+err.Error())
		}
		if first, dup := seen[item.RecordKey()]; dup {
			return serviceerror.CustomServiceError(serviceerror.ValidationError,
				fmt.Sprintf("%s: coCode %s duplicates %s", itemLabel(i), item.CoCode, itemLabel(first)))
		}
		seen[item.RecordKey()] = i
	}
	return nil
}

func (s *CompanyService) resolveOp(ctx context.Context, tx *database.Transaction, mode bulkMode, item *models.Company) (string, error) {
	switch mode {
	case bulkCreate:
		return workflow.OpCreate, nil
	case bulkUpdate:
		return workflow.OpUpdate, nil
	}

	existing, err := s.Store().GetForUpdate(ctx, tx, item.RecordKey())
	if errors.Is(err, workflow.ErrRecordNotFound) {
		return workflow.OpCreate, nil
	}
	if err != nil {
		return "", serviceerror.WrapServiceError(serviceerror.StoreError, err, "failed to read company "+item.CoCode)
	}
	if existing.WorkflowState().Recreatable() {
		return workflow.OpCreate, nil
	}
	return workflow.OpUpdate, nil
}

func bulkOp(mode bulkMode) string {
	if mode == bulkCreate {
		return workflow.OpCreate
	}
	return workflow.OpUpdate
}

func itemLabel(i int) string {
	return fmt.Sprintf("item %d", i+1)
}
