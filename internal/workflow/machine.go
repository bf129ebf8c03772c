package workflow

import (
	"time"

	"github.com/brokerage/rms-api/internal/system/error/serviceerror"
	"github.com/brokerage/rms-api/pkg/utils"
)

// Transition describes a state change applied by the machine.
type Transition struct {
	Action    ActionType
	Decision  Decision
	From      *AuthState
	To        AuthState
	ActorID   int64
	At        time.Time
	TransDate time.Time
	Remarks   string
}

func stampMaker(s *State, action ActionType, actor Actor, now time.Time) {
	s.ActionType = action
	s.IsAuth = Unauthorized
	s.AuthLevel = AuthLevelFirst
	s.MakerID = actor.UserID
	s.ActionDt = now
	s.TransDt = utils.BusinessDate(actor.TransDate)
	s.IPAddress = actor.IPAddress
	s.Remarks = actor.Remarks
	s.AuthID = nil
	s.AuthDt = nil
	s.AuthTransDt = nil
}

func makerTransition(action ActionType, from *AuthState, actor Actor, now time.Time) Transition {
	return Transition{
		Action:    action,
		From:      from,
		To:        Unauthorized,
		ActorID:   actor.UserID,
		At:        now,
		TransDate: utils.BusinessDate(actor.TransDate),
		Remarks:   actor.Remarks,
	}
}

// StageCreate stages an Insert. exists reports whether a row already holds the key;
// such a row may only be reused when it is Recreatable.
func StageCreate(s *State, exists bool, actor Actor, now time.Time) (Transition, error) {
	var from *AuthState
	if exists {
		if !s.Recreatable() {
			return Transition{}, serviceerror.CustomServiceError(serviceerror.ConflictError,
				"a record with this key already exists")
		}
		prev := s.IsAuth
		from = &prev
	}

	stampMaker(s, ActionInsert, actor, now)
	s.IsDel = NotDeleted
	s.PendingPayload = nil
	return makerTransition(ActionInsert, from, actor, now), nil
}

// StageUpdate stages an Update. It returns overwriteInsert=true when the row is a pending
// Insert being overwritten, in which case the caller replaces the live payload instead of
// staging a pending one.
func StageUpdate(s *State, policy PendingUpdatePolicy, actor Actor, now time.Time) (overwriteInsert bool, t Transition, err error) {
	if s.IsDel == Deleted || (s.ActionType == ActionInsert && s.IsAuth == Denied) {
		return false, Transition{}, serviceerror.CustomServiceError(serviceerror.NotFoundError, "record not found")
	}

	prev := s.IsAuth
	if s.IsAuth == Unauthorized {
		if s.ActionType == ActionDelete {
			return false, Transition{}, serviceerror.CustomServiceError(serviceerror.InvalidStateError,
				"record has a pending delete awaiting authorization")
		}
		if policy != OverwritePendingUpdate {
			return false, Transition{}, serviceerror.CustomServiceError(serviceerror.InvalidStateError,
				"record has a pending change awaiting authorization")
		}
		action := s.ActionType
		stampMaker(s, action, actor, now)
		return action == ActionInsert, makerTransition(action, &prev, actor, now), nil
	}

	stampMaker(s, ActionUpdate, actor, now)
	return false, makerTransition(ActionUpdate, &prev, actor, now), nil
}

// StageDelete stages a soft delete. The row must be live with no pending change.
func StageDelete(s *State, actor Actor, now time.Time) (Transition, error) {
	if s.IsDel == NotDeleted && s.ActionType == ActionInsert && s.IsAuth == Unauthorized {
		return Transition{}, serviceerror.CustomServiceError(serviceerror.InvalidStateError,
			"record is pending its own creation and cannot be deleted")
	}
	if !s.IsLive() {
		return Transition{}, serviceerror.CustomServiceError(serviceerror.NotFoundError, "record not found")
	}
	if s.IsAuth == Unauthorized {
		return Transition{}, serviceerror.CustomServiceError(serviceerror.InvalidStateError,
			"record has a pending change awaiting authorization")
	}

	prev := s.IsAuth
	stampMaker(s, ActionDelete, actor, now)
	s.PendingPayload = nil
	return makerTransition(ActionDelete, &prev, actor, now), nil
}

// Decide applies a checker decision. Approve is accepted from Unauthorized or Denied,
// Deny only from Unauthorized. An approved Delete sets the soft-delete flag.
// The caller commits the pending payload of an approved Update.
func Decide(s *State, decision Decision, checker Actor, allowSelf bool, now time.Time) (Transition, error) {
	switch decision {
	case Approve, Deny:
	default:
		return Transition{}, serviceerror.CustomServiceError(serviceerror.ValidationError,
			"decision must be APPROVE or DENY")
	}

	switch {
	case s.IsAuth == Authorized:
		return Transition{}, serviceerror.CustomServiceError(serviceerror.InvalidStateError,
			"record has no pending change to authorize")
	case s.IsAuth == Denied && decision == Deny:
		return Transition{}, serviceerror.CustomServiceError(serviceerror.InvalidStateError,
			"record is already denied")
	}

	if !allowSelf && checker.UserID == s.MakerID {
		return Transition{}, serviceerror.CustomServiceError(serviceerror.InvalidStateError,
			"the maker of a change cannot authorize it")
	}

	prev := s.IsAuth
	authTransDt := utils.BusinessDate(checker.TransDate)
	authAt := now
	authID := checker.UserID

	if decision == Approve {
		s.IsAuth = Authorized
		if s.ActionType == ActionDelete {
			s.IsDel = Deleted
		}
	} else {
		s.IsAuth = Denied
	}
	s.AuthID = &authID
	s.AuthDt = &authAt
	s.AuthTransDt = &authTransDt
	if checker.Remarks != "" {
		s.Remarks = checker.Remarks
	}

	return Transition{
		Action:    s.ActionType,
		Decision:  decision,
		From:      &prev,
		To:        s.IsAuth,
		ActorID:   checker.UserID,
		At:        now,
		TransDate: authTransDt,
		Remarks:   checker.Remarks,
	}, nil
}
