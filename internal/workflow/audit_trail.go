package workflow

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/brokerage/rms-api/internal/database"
	"github.com/brokerage/rms-api/pkg/utils"
	"github.com/jmoiron/sqlx"
)

// AuditEntry is one row of the authorization audit trail.
type AuditEntry struct {
	AuditID    string     `db:"AUDIT_ID" json:"auditId"`
	SeqNo      int64      `db:"SEQ_NO" json:"-"`
	Entity     string     `db:"ENTITY_NAME" json:"entity"`
	RecordKey  string     `db:"RECORD_KEY" json:"recordKey"`
	ActionType ActionType `db:"ACTION_TYPE" json:"actionType"`
	Decision   string     `db:"DECISION" json:"decision,omitempty"`
	FromState  *AuthState `db:"FROM_STATE" json:"fromState,omitempty"`
	ToState    AuthState  `db:"TO_STATE" json:"toState"`
	ActorID    int64      `db:"ACTOR_ID" json:"actorId"`
	ActionDt   time.Time  `db:"ACTION_DT" json:"actionDt"`
	TransDt    time.Time  `db:"TRANS_DT" json:"transDt"`
	IPAddress  string     `db:"IP_ADDRESS" json:"ipAddress"`
	Remarks    string     `db:"REMARKS" json:"remarks"`
}

var lastSeq atomic.Int64

// nextSeq returns a strictly increasing sequence seeded from the clock.
func nextSeq(now time.Time) int64 {
	candidate := now.UnixNano()
	for {
		last := lastSeq.Load()
		next := candidate
		if next <= last {
			next = last + 1
		}
		if lastSeq.CompareAndSwap(last, next) {
			return next
		}
	}
}

// AuditTrail writes and reads the AUTH_AUDIT table.
type AuditTrail struct {
	db *database.DB
}

// NewAuditTrail creates a new AuditTrail instance
func NewAuditTrail(db *database.DB) *AuditTrail {
	return &AuditTrail{db: db}
}

// RecordWithTx inserts an audit row for a transition of entity/key using a transaction
func (a *AuditTrail) RecordWithTx(ctx context.Context, e sqlx.ExtContext, entity, key, ipAddress string, t Transition) error {
	entry := &AuditEntry{
		AuditID:    utils.NewAuditID(),
		SeqNo:      nextSeq(t.At),
		Entity:     entity,
		RecordKey:  key,
		ActionType: t.Action,
		Decision:   string(t.Decision),
		FromState:  t.From,
		ToState:    t.To,
		ActorID:    t.ActorID,
		ActionDt:   t.At,
		TransDt:    t.TransDate,
		IPAddress:  ipAddress,
		Remarks:    t.Remarks,
	}

	query := `
		INSERT INTO AUTH_AUDIT (
			AUDIT_ID, SEQ_NO, ENTITY_NAME, RECORD_KEY, ACTION_TYPE, DECISION, FROM_STATE,
			TO_STATE, ACTOR_ID, ACTION_DT, TRANS_DT, IP_ADDRESS, REMARKS
		) VALUES (
			:AUDIT_ID, :SEQ_NO, :ENTITY_NAME, :RECORD_KEY, :ACTION_TYPE, :DECISION, :FROM_STATE,
			:TO_STATE, :ACTOR_ID, :ACTION_DT, :TRANS_DT, :IP_ADDRESS, :REMARKS
		)
	`

	if _, err := sqlx.NamedExecContext(ctx, e, query, entry); err != nil {
		return fmt.Errorf("failed to create authorization audit: %w", err)
	}

	return nil
}

// History returns the audit rows of entity/key in the order they were written
func (a *AuditTrail) History(ctx context.Context, entity, key string) ([]AuditEntry, error) {
	query := `
		SELECT AUDIT_ID, SEQ_NO, ENTITY_NAME, RECORD_KEY, ACTION_TYPE, DECISION, FROM_STATE,
		       TO_STATE, ACTOR_ID, ACTION_DT, TRANS_DT, IP_ADDRESS, REMARKS
		FROM AUTH_AUDIT
		WHERE ENTITY_NAME = ? AND RECORD_KEY = ?
		ORDER BY SEQ_NO ASC
	`

	entries := []AuditEntry{}
	if err := a.db.SelectContext(ctx, &entries, query, entity, key); err != nil {
		return nil, fmt.Errorf("failed to get authorization audit for %s %s: %w", entity, key, err)
	}

	return entries, nil
}
