package models

import (
	"github.com/brokerage/rms-api/internal/workflow"
	"github.com/brokerage/rms-api/pkg/utils"
)

// MstCoBrchKey identifies a branch of a company
type MstCoBrchKey struct {
	CoCode   string `db:"CO_CODE" json:"coCode" validate:"required,max=6,alphanum"`
	BrchCode string `db:"BRCH_CODE" json:"brchCode" validate:"required,max=10,excludes=0x7C"`
}

func (k MstCoBrchKey) Validate() error { return utils.ValidateStruct(k) }
func (k MstCoBrchKey) Args() []any     { return []any{k.CoCode, k.BrchCode} }
func (k MstCoBrchKey) String() string  { return joinKey(k.CoCode, k.BrchCode) }

// MstCoBrchFields holds the branch master attributes
type MstCoBrchFields struct {
	BrchName   string `db:"BRCH_NAME" json:"brchName" validate:"required,max=120"`
	BrchAddr   string `db:"BRCH_ADDR" json:"brchAddr" validate:"max=255"`
	BrchPhone  string `db:"BRCH_PHONE" json:"brchPhone" validate:"max=32"`
	BrchStatus string `db:"BRCH_STATUS" json:"brchStatus" validate:"required,oneof=A I S"`
}

// MstCoBrch is a row of MST_CO_BRCH
type MstCoBrch struct {
	MstCoBrchKey
	MstCoBrchFields
	workflow.State
}

func (b *MstCoBrch) RecordKey() MstCoBrchKey        { return b.MstCoBrchKey }
func (b *MstCoBrch) Payload() *MstCoBrchFields      { return &b.MstCoBrchFields }
func (b *MstCoBrch) WorkflowState() *workflow.State { return &b.State }
