package models

import (
	"github.com/brokerage/rms-api/internal/workflow"
	"github.com/brokerage/rms-api/pkg/utils"
)

// UserKey identifies a system user
type UserKey struct {
	UsrID string `db:"USR_ID" json:"usrId" validate:"required,max=20,excludes=0x7C"`
}

func (k UserKey) Validate() error { return utils.ValidateStruct(k) }
func (k UserKey) Args() []any     { return []any{k.UsrID} }
func (k UserKey) String() string  { return k.UsrID }

// UserFields holds the maintainable user attributes
type UserFields struct {
	UsrName   string `db:"USR_NAME" json:"usrName" validate:"required,max=120"`
	Email     string `db:"EMAIL" json:"email" validate:"required,email,max=120"`
	BrchCode  string `db:"BRCH_CODE" json:"brchCode" validate:"required,max=10"`
	RoleCode  string `db:"ROLE_CODE" json:"roleCode" validate:"max=20"`
	UsrStatus string `db:"USR_STATUS" json:"usrStatus" validate:"required,oneof=A I S"`
}

// User is a row of USR
type User struct {
	UserKey
	UserFields
	workflow.State
}

func (u *User) RecordKey() UserKey             { return u.UserKey }
func (u *User) Payload() *UserFields           { return &u.UserFields }
func (u *User) WorkflowState() *workflow.State { return &u.State }
