// Package workflow implements the maker-checker authorization cycle shared by every
// reference-data entity: staging of maker actions, checker decisions, and the
// queries that expose live and pending records.
package workflow

import (
	"fmt"
	"strconv"
	"strings"
)

// AuthState is the authorization status of the latest maker action on a row.
type AuthState int

const (
	Unauthorized AuthState = 0
	Authorized   AuthState = 1
	Denied       AuthState = 2
)

func (s AuthState) String() string {
	switch s {
	case Unauthorized:
		return "UNAUTHORIZED"
	case Authorized:
		return "AUTHORIZED"
	case Denied:
		return "DENIED"
	default:
		return fmt.Sprintf("AuthState(%d)", int(s))
	}
}

// Valid reports whether s is one of the known states.
func (s AuthState) Valid() bool {
	return s == Unauthorized || s == Authorized || s == Denied
}

// ParseAuthState parses the numeric wire form (0, 1, 2).
func ParseAuthState(value string) (AuthState, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("isAuth must be 0, 1 or 2")
	}
	s := AuthState(n)
	if !s.Valid() {
		return 0, fmt.Errorf("isAuth must be 0, 1 or 2")
	}
	return s, nil
}

// ActionType is the kind of change the maker staged.
type ActionType int

const (
	ActionInsert ActionType = 1
	ActionUpdate ActionType = 2
	ActionDelete ActionType = 3
)

func (a ActionType) String() string {
	switch a {
	case ActionInsert:
		return "INSERT"
	case ActionUpdate:
		return "UPDATE"
	case ActionDelete:
		return "DELETE"
	default:
		return fmt.Sprintf("ActionType(%d)", int(a))
	}
}

// DelFlag is the soft-delete marker.
type DelFlag int

const (
	NotDeleted DelFlag = 0
	Deleted    DelFlag = 1
)

// AuthLevel is the approval tier. Only single-step approval is performed.
type AuthLevel uint8

const (
	AuthLevelFirst  AuthLevel = 1
	AuthLevelSecond AuthLevel = 2
	AuthLevelThird  AuthLevel = 3
)

// Decision is the checker's verdict on a pending change.
type Decision string

const (
	Approve Decision = "APPROVE"
	Deny    Decision = "DENY"
)

// ParseDecision accepts APPROVE / DENY in any case.
func ParseDecision(value string) (Decision, error) {
	switch Decision(strings.ToUpper(strings.TrimSpace(value))) {
	case Approve:
		return Approve, nil
	case Deny:
		return Deny, nil
	default:
		return "", fmt.Errorf("decision must be %s or %s", Approve, Deny)
	}
}

// PendingUpdatePolicy controls an Update against a row that already has a pending change.
type PendingUpdatePolicy string

const (
	RejectPendingUpdate    PendingUpdatePolicy = "reject"
	OverwritePendingUpdate PendingUpdatePolicy = "overwrite"
)
