package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/brokerage/rms-api/internal/database"
	"github.com/brokerage/rms-api/internal/system/error/serviceerror"
	"github.com/brokerage/rms-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Config holds the behaviour switches shared by every entity service.
type Config struct {
	PendingUpdatePolicy    PendingUpdatePolicy
	AllowSelfAuthorization bool
	Limits                 Limits
}

// Deps are the collaborators shared by every entity service.
type Deps struct {
	DB        *database.DB
	Trail     *AuditTrail
	Publisher Publisher
	Recorder  Recorder
	Logger    *logrus.Logger
	Config    Config
	Clock     func() time.Time
}

// Service runs the maker-checker cycle for one entity.
type Service[K Key, P any, T any, PT Record[K, P, T]] struct {
	db        *database.DB
	store     *Store[K, P, T, PT]
	trail     *AuditTrail
	publisher Publisher
	recorder  Recorder
	logger    *logrus.Logger
	config    Config
	clock     func() time.Time
	validate  func(*P) error
}

// NewService creates a service over store. validate checks a payload before it is staged;
// when nil the payload's struct tags are used.
func NewService[K Key, P any, T any, PT Record[K, P, T]](deps Deps, store *Store[K, P, T, PT], validate func(*P) error) *Service[K, P, T, PT] {
	if validate == nil {
		validate = func(p *P) error { return utils.ValidateStruct(p) }
	}
	clock := deps.Clock
	if clock == nil {
		clock = utils.NowUTC
	}
	logger := deps.Logger
	if logger == nil {
		logger = deps.DB.Logger()
	}
	cfg := deps.Config
	if cfg.PendingUpdatePolicy == "" {
		cfg.PendingUpdatePolicy = RejectPendingUpdate
	}
	if cfg.Limits.MaxPageSize == 0 {
		cfg.Limits = DefaultLimits
	}

	return &Service[K, P, T, PT]{
		db:        deps.DB,
		store:     store,
		trail:     deps.Trail,
		publisher: deps.Publisher,
		recorder:  deps.Recorder,
		logger:    logger,
		config:    cfg,
		clock:     clock,
		validate:  validate,
	}
}

// Entity returns the logical entity name.
func (s *Service[K, P, T, PT]) Entity() string {
	return s.store.table.Entity
}

// Store returns the underlying store.
func (s *Service[K, P, T, PT]) Store() *Store[K, P, T, PT] {
	return s.store
}

// Limits returns the list limits in effect.
func (s *Service[K, P, T, PT]) Limits() Limits {
	return s.config.Limits
}

// Create stages a new record awaiting authorization.
func (s *Service[K, P, T, PT]) Create(ctx context.Context, rec PT, maker Actor) (PT, error) {
	var out PT
	err := s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		var err error
		out, err = s.CreateTx(ctx, tx, rec, maker)
		return err
	})
	s.Observe(OpCreate, err)
	if err != nil {
		return nil, serviceerror.ToServiceError(err)
	}
	return out, nil
}

// CreateTx stages a new record inside tx.
func (s *Service[K, P, T, PT]) CreateTx(ctx context.Context, tx *database.Transaction, rec PT, maker Actor) (PT, error) {
	if rec == nil {
		return nil, validationError("record is required")
	}
	key := rec.RecordKey()
	if err := s.checkInput(key, rec.Payload()); err != nil {
		return nil, err
	}
	maker, err := s.checkActor(maker)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.GetForUpdate(ctx, tx, key)
	if err != nil && !errors.Is(err, ErrRecordNotFound) {
		return nil, s.storeError(err, key)
	}

	st := rec.WorkflowState()
	now := s.clock()
	if existing != nil {
		*st = *existing.WorkflowState()
		t, err := StageCreate(st, true, maker, now)
		if err != nil {
			return nil, withKey(err, s.Entity(), key)
		}
		if err := s.store.Save(ctx, tx, rec); err != nil {
			return nil, s.storeError(err, key)
		}
		return rec, s.audit(ctx, tx, key, maker.IPAddress, t)
	}

	*st = State{}
	t, _ := StageCreate(st, false, maker, now)
	if err := s.store.Insert(ctx, tx, rec); err != nil {
		if _, getErr := s.store.Get(ctx, tx, key); getErr == nil {
			return nil, serviceerror.CustomServiceError(serviceerror.ConflictError,
				fmt.Sprintf("%s %s already exists", s.Entity(), key.String()))
		}
		return nil, s.storeError(err, key)
	}
	return rec, s.audit(ctx, tx, key, maker.IPAddress, t)
}

// Update stages a change of a live record's payload.
func (s *Service[K, P, T, PT]) Update(ctx context.Context, key K, rec PT, maker Actor) (PT, error) {
	var out PT
	err := s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		var err error
		out, err = s.UpdateTx(ctx, tx, key, rec, maker)
		return err
	})
	s.Observe(OpUpdate, err)
	if err != nil {
		return nil, serviceerror.ToServiceError(err)
	}
	return out, nil
}

// UpdateTx stages a change inside tx.
func (s *Service[K, P, T, PT]) UpdateTx(ctx context.Context, tx *database.Transaction, key K, rec PT, maker Actor) (PT, error) {
	if rec == nil {
		return nil, validationError("record is required")
	}
	if rec.RecordKey() != key {
		return nil, validationError("record key does not match the requested key")
	}
	if err := s.checkInput(key, rec.Payload()); err != nil {
		return nil, err
	}
	maker, err := s.checkActor(maker)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.GetForUpdate(ctx, tx, key)
	if err != nil {
		return nil, s.storeError(err, key)
	}

	st := existing.WorkflowState()
	overwriteInsert, t, err := StageUpdate(st, s.config.PendingUpdatePolicy, maker, s.clock())
	if err != nil {
		return nil, withKey(err, s.Entity(), key)
	}

	if overwriteInsert {
		*existing.Payload() = *rec.Payload()
	} else if err := encodePending(st, rec.Payload()); err != nil {
		return nil, serviceerror.WrapServiceError(serviceerror.StoreError, err, "failed to stage update")
	}

	if err := s.store.Save(ctx, tx, existing); err != nil {
		return nil, s.storeError(err, key)
	}
	return existing, s.audit(ctx, tx, key, maker.IPAddress, t)
}

// Delete stages a soft delete of a live record.
func (s *Service[K, P, T, PT]) Delete(ctx context.Context, key K, maker Actor) (PT, error) {
	var out PT
	err := s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		var err error
		out, err = s.DeleteTx(ctx, tx, key, maker)
		return err
	})
	s.Observe(OpDelete, err)
	if err != nil {
		return nil, serviceerror.ToServiceError(err)
	}
	return out, nil
}

// DeleteTx stages a soft delete inside tx.
func (s *Service[K, P, T, PT]) DeleteTx(ctx context.Context, tx *database.Transaction, key K, maker Actor) (PT, error) {
	if err := key.Validate(); err != nil {
		return nil, validationError(err.Error())
	}
	maker, err := s.checkActor(maker)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.GetForUpdate(ctx, tx, key)
	if err != nil {
		return nil, s.storeError(err, key)
	}

	t, err := StageDelete(existing.WorkflowState(), maker, s.clock())
	if err != nil {
		return nil, withKey(err, s.Entity(), key)
	}

	if err := s.store.Save(ctx, tx, existing); err != nil {
		return nil, s.storeError(err, key)
	}
	return existing, s.audit(ctx, tx, key, maker.IPAddress, t)
}

// Authorize applies a checker decision to the pending change of key.
func (s *Service[K, P, T, PT]) Authorize(ctx context.Context, key K, decision Decision, checker Actor) (PT, error) {
	var out PT
	err := s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		var err error
		out, err = s.AuthorizeTx(ctx, tx, key, decision, checker)
		return err
	})
	s.Observe(OpAuthorize, err)
	if err != nil {
		return nil, serviceerror.ToServiceError(err)
	}
	s.NotifyDecision(ctx, out, decision)
	return out, nil
}

// AuthorizeTx applies a checker decision inside tx. The caller publishes the decision
// with NotifyDecision once tx is committed.
func (s *Service[K, P, T, PT]) AuthorizeTx(ctx context.Context, tx *database.Transaction, key K, decision Decision, checker Actor) (PT, error) {
	if err := key.Validate(); err != nil {
		return nil, validationError(err.Error())
	}
	checker, err := s.checkActor(checker)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.GetForUpdate(ctx, tx, key)
	if err != nil {
		return nil, s.storeError(err, key)
	}

	st := existing.WorkflowState()
	t, err := Decide(st, decision, checker, s.config.AllowSelfAuthorization, s.clock())
	if err != nil {
		return nil, withKey(err, s.Entity(), key)
	}

	if decision == Approve && st.ActionType == ActionUpdate && st.PendingPayload != nil {
		if err := decodePending(st, existing.Payload()); err != nil {
			return nil, serviceerror.WrapServiceError(serviceerror.StoreError, err, "failed to commit staged update")
		}
		st.PendingPayload = nil
	}

	if err := s.store.Save(ctx, tx, existing); err != nil {
		return nil, s.storeError(err, key)
	}
	return existing, s.audit(ctx, tx, key, checker.IPAddress, t)
}

// Get returns the row for key in whatever workflow state it is in.
func (s *Service[K, P, T, PT]) Get(ctx context.Context, key K) (PT, error) {
	if err := key.Validate(); err != nil {
		return nil, validationError(err.Error())
	}
	rec, err := s.store.Get(ctx, s.db, key)
	if err != nil {
		return nil, s.storeError(err, key)
	}
	return rec, nil
}

// Exists reports whether key is held by a live record.
func (s *Service[K, P, T, PT]) Exists(ctx context.Context, key K) (bool, error) {
	if err := key.Validate(); err != nil {
		return false, validationError(err.Error())
	}
	ok, err := s.store.Exists(ctx, s.db, key)
	if err != nil {
		return false, s.storeError(err, key)
	}
	return ok, nil
}

// List returns a page of live records.
func (s *Service[K, P, T, PT]) List(ctx context.Context, lq ListQuery) (*PagedResult[PT], error) {
	return s.list(ctx, LiveView(), lq)
}

// WorkflowList returns a page of records whose latest action is in state isAuth.
func (s *Service[K, P, T, PT]) WorkflowList(ctx context.Context, isAuth AuthState, lq ListQuery) (*PagedResult[PT], error) {
	if !isAuth.Valid() {
		return nil, validationError("isAuth must be 0, 1 or 2")
	}
	return s.list(ctx, WorkflowView(isAuth), lq)
}

func (s *Service[K, P, T, PT]) list(ctx context.Context, view View, lq ListQuery) (*PagedResult[PT], error) {
	if err := lq.Normalize(s.config.Limits, s.store.table); err != nil {
		return nil, err
	}
	items, total, err := s.store.List(ctx, s.db, view, lq)
	if err != nil {
		return nil, serviceerror.WrapServiceError(serviceerror.StoreError, err,
			fmt.Sprintf("failed to list %s", s.Entity()))
	}
	return NewPagedResult(items, total, lq.PageNumber, lq.PageSize), nil
}

// History returns the authorization audit trail of key.
func (s *Service[K, P, T, PT]) History(ctx context.Context, key K) ([]AuditEntry, error) {
	if err := key.Validate(); err != nil {
		return nil, validationError(err.Error())
	}
	entries, err := s.trail.History(ctx, s.Entity(), key.String())
	if err != nil {
		return nil, serviceerror.WrapServiceError(serviceerror.StoreError, err, "failed to load history")
	}
	return entries, nil
}

// Pending decodes the staged update payload of rec, or returns nil when there is none.
func (s *Service[K, P, T, PT]) Pending(rec PT) (*P, error) {
	st := rec.WorkflowState()
	if st.PendingPayload == nil {
		return nil, nil
	}
	var p P
	if err := decodePending(st, &p); err != nil {
		return nil, serviceerror.WrapServiceError(serviceerror.StoreError, err, "failed to decode staged update")
	}
	return &p, nil
}

// NotifyDecision publishes a committed decision. Failures are logged, never returned.
func (s *Service[K, P, T, PT]) NotifyDecision(ctx context.Context, rec PT, decision Decision) {
	if s.publisher == nil || rec == nil {
		return
	}
	st := rec.WorkflowState()
	event := DecisionEvent{
		Entity:     s.Entity(),
		Key:        rec.RecordKey().String(),
		Decision:   decision,
		ActionType: st.ActionType,
		IsAuth:     st.IsAuth,
		IsDel:      st.IsDel,
		MakerID:    st.MakerID,
		DecidedAt:  s.clock(),
		Remarks:    st.Remarks,
	}
	if st.AuthID != nil {
		event.CheckerID = *st.AuthID
	}
	if st.AuthDt != nil {
		event.DecidedAt = *st.AuthDt
	}

	if err := s.publisher.PublishDecision(ctx, event); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"entity":   event.Entity,
			"key":      event.Key,
			"decision": event.Decision,
		}).Warn("Failed to publish authorization decision")
	}
}

// Observe records the outcome of an operation.
func (s *Service[K, P, T, PT]) Observe(op string, err error) {
	if s.recorder == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = string(serviceerror.ToServiceError(err).Kind)
	}
	s.recorder.RecordTransition(s.Entity(), op, outcome)
}

func (s *Service[K, P, T, PT]) audit(ctx context.Context, tx *database.Transaction, key K, ipAddress string, t Transition) error {
	s.logger.WithFields(logrus.Fields{
		"entity":   s.Entity(),
		"key":      key.String(),
		"action":   t.Action.String(),
		"decision": t.Decision,
		"to":       t.To.String(),
		"actor":    t.ActorID,
	}).Info("Workflow transition")

	if s.trail == nil {
		return nil
	}
	if err := s.trail.RecordWithTx(ctx, tx, s.Entity(), key.String(), ipAddress, t); err != nil {
		return serviceerror.WrapServiceError(serviceerror.StoreError, err, "failed to write audit trail")
	}
	return nil
}

func (s *Service[K, P, T, PT]) checkInput(key K, payload *P) error {
	if err := key.Validate(); err != nil {
		return validationError(err.Error())
	}
	if err := s.validate(payload); err != nil {
		return validationError(err.Error())
	}
	return nil
}

func (s *Service[K, P, T, PT]) checkActor(actor Actor) (Actor, error) {
	if actor.UserID <= 0 {
		return actor, validationError("user id is required")
	}
	if actor.TransDate.IsZero() {
		actor.TransDate = s.clock()
	}
	actor.Remarks = utils.SanitizeString(actor.Remarks)
	if err := utils.ValidateMaxLength("remarks", actor.Remarks, 500); err != nil {
		return actor, validationError(err.Error())
	}
	return actor, nil
}

func (s *Service[K, P, T, PT]) storeError(err error, key K) error {
	var svcErr *serviceerror.ServiceError
	switch {
	case errors.As(err, &svcErr):
		return svcErr
	case errors.Is(err, ErrRecordNotFound):
		return serviceerror.CustomServiceError(serviceerror.NotFoundError,
			fmt.Sprintf("%s %s not found", s.Entity(), key.String()))
	default:
		return serviceerror.WrapServiceError(serviceerror.StoreError, err,
			fmt.Sprintf("failed to access %s %s", s.Entity(), key.String()))
	}
}

func withKey[K Key](err error, entity string, key K) error {
	return serviceerror.WithPrefix(err, fmt.Sprintf("%s %s", entity, key.String()))
}

func encodePending[P any](st *State, payload *P) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	encoded := string(b)
	st.PendingPayload = &encoded
	return nil
}

func decodePending[P any](st *State, payload *P) error {
	if st.PendingPayload == nil {
		return nil
	}
	return json.Unmarshal([]byte(*st.PendingPayload), payload)
}
