package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/brokerage/rms-api/internal/dao"
	"github.com/brokerage/rms-api/internal/database"
	"github.com/brokerage/rms-api/internal/models"
	"github.com/brokerage/rms-api/internal/system/error/serviceerror"
	"github.com/brokerage/rms-api/internal/workflow"
)

// OrderGroupService maintains order groups together with their member permissions.
// The header and every member row carry their own workflow state.
type OrderGroupService struct {
	*workflow.Service[models.OrderGroupKey, models.OrderGroupFields, models.OrderGroup, *models.OrderGroup]
	members *OrderGroupUserService
	db      *database.DB
	logger  *logrus.Logger
}

// NewOrderGroupService creates a new OrderGroupService
func NewOrderGroupService(deps workflow.Deps) *OrderGroupService {
	logger := deps.Logger
	if logger == nil {
		logger = deps.DB.Logger()
	}
	return &OrderGroupService{
		Service: workflow.NewService(deps, dao.NewOrderGroupStore(deps.DB), nil),
		members: workflow.NewService(deps, dao.NewOrderGroupUserStore(deps.DB), nil),
		db:      deps.DB,
		logger:  logger,
	}
}

// Members returns the membership service
func (s *OrderGroupService) Members() *OrderGroupUserService {
	return s.members
}

type saveMode int

const (
	saveAny saveMode = iota
	saveNew
	saveExisting
)

// SaveOrderGroupWithUsers stages the group header and reconciles its members in one
// transaction. New members are staged as inserts, changed members as updates and live
// members missing from users as deletes. Unchanged rows are left alone.
func (s *OrderGroupService) SaveOrderGroupWithUsers(ctx context.Context, group *models.OrderGroup, users []*models.OrderGroupUser, maker workflow.Actor) (*models.OrderGroupWithUsers, error) {
	return s.save(ctx, saveAny, group, users, maker)
}

// CreateWithUsers is SaveOrderGroupWithUsers for a group code that is not in use.
func (s *OrderGroupService) CreateWithUsers(ctx context.Context, group *models.OrderGroup, users []*models.OrderGroupUser, maker workflow.Actor) (*models.OrderGroupWithUsers, error) {
	return s.save(ctx, saveNew, group, users, maker)
}

// UpdateWithUsers is SaveOrderGroupWithUsers for an existing group.
func (s *OrderGroupService) UpdateWithUsers(ctx context.Context, group *models.OrderGroup, users []*models.OrderGroupUser, maker workflow.Actor) (*models.OrderGroupWithUsers, error) {
	return s.save(ctx, saveExisting, group, users, maker)
}

func (s *OrderGroupService) save(ctx context.Context, mode saveMode, group *models.OrderGroup, users []*models.OrderGroupUser, maker workflow.Actor) (*models.OrderGroupWithUsers, error) {
	if err := s.checkAggregate(group, users); err != nil {
		s.Observe(workflow.OpUpdate, err)
		return nil, err
	}

	var out *models.OrderGroupWithUsers
	op := workflow.OpCreate
	err := s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		var err error
		op, err = s.saveHeader(ctx, tx, mode, group, maker)
		if err != nil {
			return err
		}
		if err := s.reconcileMembers(ctx, tx, group.OrderGroupKey, users, maker); err != nil {
			return err
		}
		out, err = s.load(ctx, tx, group.OrderGroupKey)
		return err
	})
	s.Observe(op, err)
	if err != nil {
		return nil, serviceerror.ToServiceError(err)
	}

	s.logger.WithFields(logrus.Fields{
		"group":   group.GrpCode,
		"members": len(out.Users),
		"actor":   maker.UserID,
	}).Info("Order group staged")
	return out, nil
}

func (s *OrderGroupService) saveHeader(ctx context.Context, tx *database.Transaction, mode saveMode, group *models.OrderGroup, maker workflow.Actor) (string, error) {
	existing, err := s.Store().GetForUpdate(ctx, tx, group.OrderGroupKey)
	if errors.Is(err, workflow.ErrRecordNotFound) || (err == nil && existing.WorkflowState().Recreatable()) {
		if mode == saveExisting {
			return workflow.OpUpdate, serviceerror.CustomServiceError(serviceerror.NotFoundError,
				fmt.Sprintf("%s %s not found", s.Entity(), group.GrpCode))
		}
		_, err = s.CreateTx(ctx, tx, group, maker)
		return workflow.OpCreate, err
	}
	if err != nil {
		return workflow.OpUpdate, serviceerror.WrapServiceError(serviceerror.StoreError, err,
			"failed to read order group "+group.GrpCode)
	}
	if mode == saveNew {
		return workflow.OpCreate, serviceerror.CustomServiceError(serviceerror.ConflictError,
			fmt.Sprintf("%s %s already exists", s.Entity(), group.GrpCode))
	}

	current, err := s.effectiveHeader(existing)
	if err != nil {
		return workflow.OpUpdate, err
	}
	if *current == group.OrderGroupFields {
		return workflow.OpUpdate, nil
	}
	_, err = s.UpdateTx(ctx, tx, group.OrderGroupKey, group, maker)
	return workflow.OpUpdate, err
}

func (s *OrderGroupService) reconcileMembers(ctx context.Context, tx *database.Transaction, key models.OrderGroupKey, users []*models.OrderGroupUser, maker workflow.Actor) error {
	rows, err := s.members.Store().FindBy(ctx, tx, "GRP_CODE", key.GrpCode)
	if err != nil {
		return serviceerror.WrapServiceError(serviceerror.StoreError, err,
			"failed to read members of order group "+key.GrpCode)
	}
	existing := make(map[string]*models.OrderGroupUser, len(rows))
	for _, row := range rows {
		existing[row.UsrID] = row
	}

	submitted := make(map[string]bool, len(users))
	for _, user := range users {
		submitted[user.UsrID] = true
		row, ok := existing[user.UsrID]
		if !ok || row.WorkflowState().Recreatable() {
			if _, err := s.members.CreateTx(ctx, tx, user, maker); err != nil {
				return err
			}
			continue
		}

		current, err := s.effectiveMember(row)
		if err != nil {
			return err
		}
		if sameMemberFields(*current, user.OrderGroupUserFields) {
			continue
		}
		if _, err := s.members.UpdateTx(ctx, tx, user.RecordKey(), user, maker); err != nil {
			return err
		}
	}

	for _, row := range rows {
		if submitted[row.UsrID] || !row.WorkflowState().IsLive() {
			continue
		}
		if _, err := s.members.DeleteTx(ctx, tx, row.RecordKey(), maker); err != nil {
			return err
		}
	}
	return nil
}

// DeleteGroup stages a delete of the group header and every live member.
func (s *OrderGroupService) DeleteGroup(ctx context.Context, key models.OrderGroupKey, maker workflow.Actor) (*models.OrderGroupWithUsers, error) {
	var out *models.OrderGroupWithUsers
	err := s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		if _, err := s.DeleteTx(ctx, tx, key, maker); err != nil {
			return err
		}

		rows, err := s.members.Store().FindBy(ctx, tx, "GRP_CODE", key.GrpCode)
		if err != nil {
			return serviceerror.WrapServiceError(serviceerror.StoreError, err,
				"failed to read members of order group "+key.GrpCode)
		}
		for _, row := range rows {
			if !row.WorkflowState().IsLive() {
				continue
			}
			if _, err := s.members.DeleteTx(ctx, tx, row.RecordKey(), maker); err != nil {
				return err
			}
		}

		out, err = s.load(ctx, tx, key)
		return err
	})
	s.Observe(workflow.OpDelete, err)
	if err != nil {
		return nil, serviceerror.ToServiceError(err)
	}
	return out, nil
}

// Authorize applies decision to the pending header change and every pending member
// change of the group. All rows are decided together or none is.
func (s *OrderGroupService) Authorize(ctx context.Context, key models.OrderGroupKey, decision workflow.Decision, checker workflow.Actor) (*models.OrderGroupWithUsers, error) {
	var (
		out     *models.OrderGroupWithUsers
		header  *models.OrderGroup
		decided []*models.OrderGroupUser
	)
	err := s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		if err := key.Validate(); err != nil {
			return serviceerror.CustomServiceError(serviceerror.ValidationError, err.Error())
		}
		existing, err := s.Store().GetForUpdate(ctx, tx, key)
		if errors.Is(err, workflow.ErrRecordNotFound) {
			return serviceerror.CustomServiceError(serviceerror.NotFoundError,
				fmt.Sprintf("%s %s not found", s.Entity(), key.String()))
		}
		if err != nil {
			return serviceerror.WrapServiceError(serviceerror.StoreError, err, "failed to read order group "+key.GrpCode)
		}

		if existing.WorkflowState().IsPending() {
			if header, err = s.AuthorizeTx(ctx, tx, key, decision, checker); err != nil {
				return err
			}
		}

		rows, err := s.members.Store().FindBy(ctx, tx, "GRP_CODE", key.GrpCode)
		if err != nil {
			return serviceerror.WrapServiceError(serviceerror.StoreError, err,
				"failed to read members of order group "+key.GrpCode)
		}
		for _, row := range rows {
			if !row.WorkflowState().IsPending() {
				continue
			}
			rec, err := s.members.AuthorizeTx(ctx, tx, row.RecordKey(), decision, checker)
			if err != nil {
				return err
			}
			decided = append(decided, rec)
		}

		if header == nil && len(decided) == 0 {
			return serviceerror.CustomServiceError(serviceerror.InvalidStateError,
				fmt.Sprintf("%s %s has no pending changes", s.Entity(), key.String()))
		}

		out, err = s.load(ctx, tx, key)
		return err
	})
	s.Observe(workflow.OpAuthorize, err)
	if err != nil {
		return nil, serviceerror.ToServiceError(err)
	}

	if header != nil {
		s.NotifyDecision(ctx, header, decision)
	}
	for _, rec := range decided {
		s.members.NotifyDecision(ctx, rec, decision)
	}
	return out, nil
}

// AuthorizeMember decides the pending change of a single membership. A new member
// cannot be approved while its group is not live.
func (s *OrderGroupService) AuthorizeMember(ctx context.Context, key models.OrderGroupUserKey, decision workflow.Decision, checker workflow.Actor) (*models.OrderGroupUser, error) {
	var out *models.OrderGroupUser
	err := s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		if decision == workflow.Approve {
			header, err := s.Store().Get(ctx, tx, models.OrderGroupKey{GrpCode: key.GrpCode})
			if err != nil && !errors.Is(err, workflow.ErrRecordNotFound) {
				return serviceerror.WrapServiceError(serviceerror.StoreError, err, "failed to read order group "+key.GrpCode)
			}
			if header == nil || !header.WorkflowState().IsLive() {
				return serviceerror.CustomServiceError(serviceerror.InvalidStateError,
					fmt.Sprintf("order group %s is not authorized", key.GrpCode))
			}
		}

		var err error
		out, err = s.members.AuthorizeTx(ctx, tx, key, decision, checker)
		return err
	})
	s.members.Observe(workflow.OpAuthorize, err)
	if err != nil {
		return nil, serviceerror.ToServiceError(err)
	}
	s.members.NotifyDecision(ctx, out, decision)
	return out, nil
}

// GetWithUsers returns the group header and all of its member rows in any workflow state.
func (s *OrderGroupService) GetWithUsers(ctx context.Context, key models.OrderGroupKey) (*models.OrderGroupWithUsers, error) {
	if err := key.Validate(); err != nil {
		return nil, serviceerror.CustomServiceError(serviceerror.ValidationError, err.Error())
	}
	out, err := s.load(ctx, s.db, key)
	if err != nil {
		return nil, serviceerror.ToServiceError(err)
	}
	return out, nil
}

func (s *OrderGroupService) load(ctx context.Context, q sqlx.QueryerContext, key models.OrderGroupKey) (*models.OrderGroupWithUsers, error) {
	header, err := s.Store().Get(ctx, q, key)
	if errors.Is(err, workflow.ErrRecordNotFound) {
		return nil, serviceerror.CustomServiceError(serviceerror.NotFoundError,
			fmt.Sprintf("%s %s not found", s.Entity(), key.String()))
	}
	if err != nil {
		return nil, serviceerror.WrapServiceError(serviceerror.StoreError, err, "failed to read order group "+key.GrpCode)
	}

	users, err := s.members.Store().FindBy(ctx, q, "GRP_CODE", key.GrpCode)
	if err != nil {
		return nil, serviceerror.WrapServiceError(serviceerror.StoreError, err,
			"failed to read members of order group "+key.GrpCode)
	}
	if users == nil {
		users = []*models.OrderGroupUser{}
	}
	return &models.OrderGroupWithUsers{Group: header, Users: users}, nil
}

func (s *OrderGroupService) checkAggregate(group *models.OrderGroup, users []*models.OrderGroupUser) error {
	if group == nil {
		return serviceerror.CustomServiceError(serviceerror.ValidationError, "group is required")
	}
	if err := group.RecordKey().Validate(); err != nil {
		return serviceerror.CustomServiceError(serviceerror.ValidationError, err.Error())
	}

	seen := make(map[string]bool, len(users))
	for i, user := range users {
		if user == nil {
			return serviceerror.CustomServiceError(serviceerror.ValidationError,
				fmt.Sprintf("users[%d] is required", i))
		}
		if user.GrpCode == "" {
			user.GrpCode = group.GrpCode
		}
		if user.GrpCode != group.GrpCode {
			return serviceerror.CustomServiceError(serviceerror.ValidationError,
				fmt.Sprintf("users[%d] belongs to group %s, not %s", i, user.GrpCode, group.GrpCode))
		}
		if seen[user.UsrID] {
			return serviceerror.CustomServiceError(serviceerror.ValidationError,
				fmt.Sprintf("users[%d]: usrId %s is listed more than once", i, user.UsrID))
		}
		seen[user.UsrID] = true
	}
	return nil
}

// effectiveHeader returns the payload a maker last submitted for rec
func (s *OrderGroupService) effectiveHeader(rec *models.OrderGroup) (*models.OrderGroupFields, error) {
	if !rec.WorkflowState().IsPending() {
		return rec.Payload(), nil
	}
	pending, err := s.Pending(rec)
	if err != nil || pending != nil {
		return pending, err
	}
	return rec.Payload(), nil
}

func (s *OrderGroupService) effectiveMember(rec *models.OrderGroupUser) (*models.OrderGroupUserFields, error) {
	if !rec.WorkflowState().IsPending() {
		return rec.Payload(), nil
	}
	pending, err := s.members.Pending(rec)
	if err != nil || pending != nil {
		return pending, err
	}
	return rec.Payload(), nil
}

func sameMemberFields(a, b models.OrderGroupUserFields) bool {
	return a.CanBuy == b.CanBuy &&
		a.CanSell == b.CanSell &&
		a.MaxOrderQty == b.MaxOrderQty &&
		a.MaxOrderAmt.Equal(b.MaxOrderAmt)
}
