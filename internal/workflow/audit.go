package workflow

import (
	"time"
)

// State holds the workflow and audit columns every entity row carries.
type State struct {
	ActionType  ActionType `db:"ACTION_TYPE" json:"actionType"`
	IsAuth      AuthState  `db:"IS_AUTH" json:"isAuth"`
	AuthLevel   AuthLevel  `db:"AUTH_LEVEL" json:"authLevel"`
	IsDel       DelFlag    `db:"IS_DEL" json:"isDel"`
	MakerID     int64      `db:"MAKER_ID" json:"makerId"`
	ActionDt    time.Time  `db:"ACTION_DT" json:"actionDt"`
	TransDt     time.Time  `db:"TRANS_DT" json:"transDt"`
	IPAddress   string     `db:"IP_ADDRESS" json:"ipAddress"`
	AuthID      *int64     `db:"AUTH_ID" json:"authId,omitempty"`
	AuthDt      *time.Time `db:"AUTH_DT" json:"authDt,omitempty"`
	AuthTransDt *time.Time `db:"AUTH_TRANS_DT" json:"authTransDt,omitempty"`
	Remarks     string     `db:"REMARKS" json:"remarks"`

	// PendingPayload is the JSON encoded payload of a staged Update.
	PendingPayload *string `db:"PENDING_PAYLOAD" json:"-"`
	RowVersion     int64   `db:"ROW_VERSION" json:"-"`
}

// stateColumns lists the workflow columns in State order.
var stateColumns = []string{
	"ACTION_TYPE", "IS_AUTH", "AUTH_LEVEL", "IS_DEL", "MAKER_ID", "ACTION_DT", "TRANS_DT",
	"IP_ADDRESS", "AUTH_ID", "AUTH_DT", "AUTH_TRANS_DT", "REMARKS", "PENDING_PAYLOAD", "ROW_VERSION",
}

// liveCondition selects rows visible to business reads.
const liveCondition = "IS_DEL = 0 AND NOT (ACTION_TYPE = 1 AND IS_AUTH <> 1)"

// IsLive reports whether the row is visible to business reads: not deleted and
// not an insert that has yet to be approved.
func (s *State) IsLive() bool {
	if s.IsDel == Deleted {
		return false
	}
	return !(s.ActionType == ActionInsert && s.IsAuth != Authorized)
}

// IsPending reports whether a maker action awaits a decision.
func (s *State) IsPending() bool {
	return s.IsAuth == Unauthorized
}

// Recreatable reports whether a Create may restart the cycle on this key.
func (s *State) Recreatable() bool {
	if s.IsDel == Deleted {
		return true
	}
	return s.ActionType == ActionInsert && s.IsAuth == Denied
}

// Actor identifies who performs a maker action or checker decision.
type Actor struct {
	UserID    int64
	IPAddress string
	// TransDate is the business date of the action.
	TransDate time.Time
	Remarks   string
}

// HasWorkflowState is implemented by every entity row.
type HasWorkflowState interface {
	WorkflowState() *State
}
