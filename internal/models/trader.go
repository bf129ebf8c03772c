package models

import (
	"github.com/brokerage/rms-api/internal/workflow"
	"github.com/brokerage/rms-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// TraderKey identifies a dealer
type TraderKey struct {
	DlrCode string `db:"DLR_CODE" json:"dlrCode" validate:"required,max=20,excludes=0x7C"`
}

func (k TraderKey) Validate() error { return utils.ValidateStruct(k) }
func (k TraderKey) Args() []any     { return []any{k.DlrCode} }
func (k TraderKey) String() string  { return k.DlrCode }

// TraderFields holds the maintainable dealer attributes
type TraderFields struct {
	DlrName      string          `db:"DLR_NAME" json:"dlrName" validate:"required,max=120"`
	BrchCode     string          `db:"BRCH_CODE" json:"brchCode" validate:"required,max=10"`
	UsrID        string          `db:"USR_ID" json:"usrId" validate:"max=20"`
	DlrType      string          `db:"DLR_TYPE" json:"dlrType" validate:"required,oneof=D R"`
	DlrExpsLimit decimal.Decimal `db:"DLR_EXPS_LIMIT" json:"dlrExpsLimit" validate:"gte=0"`
	DlrStatus    string          `db:"DLR_STATUS" json:"dlrStatus" validate:"required,oneof=A I S"`
}

// Trader is a row of TRADER
type Trader struct {
	TraderKey
	TraderFields
	workflow.State
}

func (t *Trader) RecordKey() TraderKey           { return t.TraderKey }
func (t *Trader) Payload() *TraderFields         { return &t.TraderFields }
func (t *Trader) WorkflowState() *workflow.State { return &t.State }
