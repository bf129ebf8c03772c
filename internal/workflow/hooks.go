package workflow

import (
	"context"
	"time"
)

// DecisionEvent is emitted after a checker decision is committed.
type DecisionEvent struct {
	Entity     string     `json:"entity"`
	Key        string     `json:"key"`
	Decision   Decision   `json:"decision"`
	ActionType ActionType `json:"actionType"`
	IsAuth     AuthState  `json:"isAuth"`
	IsDel      DelFlag    `json:"isDel"`
	MakerID    int64      `json:"makerId"`
	CheckerID  int64      `json:"checkerId"`
	DecidedAt  time.Time  `json:"decidedAt"`
	Remarks    string     `json:"remarks,omitempty"`
}

// Publisher delivers committed decisions to downstream consumers.
type Publisher interface {
	PublishDecision(ctx context.Context, event DecisionEvent) error
}

// Recorder counts workflow operations by entity, action and outcome.
type Recorder interface {
	RecordTransition(entity, action, outcome string)
}

// Operation names used for logging and metrics.
const (
	OpCreate    = "create"
	OpUpdate    = "update"
	OpDelete    = "delete"
	OpAuthorize = "authorize"
)
