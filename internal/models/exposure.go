package models

import (
	"github.com/brokerage/rms-api/internal/workflow"
	"github.com/brokerage/rms-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// ClientExposureKey identifies the exposure limits of a client at a branch
type ClientExposureKey struct {
	ClntCode string `db:"CLNT_CODE" json:"clntCode" validate:"required,max=20,excludes=0x7C"`
	BrchCode string `db:"BRCH_CODE" json:"brchCode" validate:"required,max=10,excludes=0x7C"`
}

func (k ClientExposureKey) Validate() error { return utils.ValidateStruct(k) }
func (k ClientExposureKey) Args() []any     { return []any{k.ClntCode, k.BrchCode} }
func (k ClientExposureKey) String() string  { return joinKey(k.ClntCode, k.BrchCode) }

// ClientExposureFields holds client trading limits
type ClientExposureFields struct {
	ClntExpsBuyAmt  decimal.Decimal `db:"CLNT_EXPS_BUY_AMT" json:"clntExpsBuyAmt" validate:"gte=0"`
	ClntExpsSellAmt decimal.Decimal `db:"CLNT_EXPS_SELL_AMT" json:"clntExpsSellAmt" validate:"gte=0"`
	ClntExpsNetAmt  decimal.Decimal `db:"CLNT_EXPS_NET_AMT" json:"clntExpsNetAmt" validate:"gte=0"`
}

// ClientExposure is a row of CLIENT_EXPOSURE
type ClientExposure struct {
	ClientExposureKey
	ClientExposureFields
	workflow.State
}

func (e *ClientExposure) RecordKey() ClientExposureKey   { return e.ClientExposureKey }
func (e *ClientExposure) Payload() *ClientExposureFields { return &e.ClientExposureFields }
func (e *ClientExposure) WorkflowState() *workflow.State { return &e.State }

// UserExposureKey identifies the exposure limits of a user
type UserExposureKey struct {
	UsrID string `db:"USR_ID" json:"usrId" validate:"required,max=20,excludes=0x7C"`
}

func (k UserExposureKey) Validate() error { return utils.ValidateStruct(k) }
func (k UserExposureKey) Args() []any     { return []any{k.UsrID} }
func (k UserExposureKey) String() string  { return k.UsrID }

// UserExposureFields holds user trading limits
type UserExposureFields struct {
	UsrExpsBuyAmt   decimal.Decimal `db:"USR_EXPS_BUY_AMT" json:"usrExpsBuyAmt" validate:"gte=0"`
	UsrExpsSellAmt  decimal.Decimal `db:"USR_EXPS_SELL_AMT" json:"usrExpsSellAmt" validate:"gte=0"`
	UsrExpsTotalAmt decimal.Decimal `db:"USR_EXPS_TOTAL_AMT" json:"usrExpsTotalAmt" validate:"gte=0"`
}

// UserExposure is a row of USER_EXPOSURE
type UserExposure struct {
	UserExposureKey
	UserExposureFields
	workflow.State
}

func (e *UserExposure) RecordKey() UserExposureKey     { return e.UserExposureKey }
func (e *UserExposure) Payload() *UserExposureFields   { return &e.UserExposureFields }
func (e *UserExposure) WorkflowState() *workflow.State { return &e.State }

// StockExposureKey identifies the exposure limits of a stock
type StockExposureKey struct {
	XchgCode string `db:"XCHG_CODE" json:"xchgCode" validate:"required,max=10,excludes=0x7C"`
	StkCode  string `db:"STK_CODE" json:"stkCode" validate:"required,max=20,excludes=0x7C"`
}

func (k StockExposureKey) Validate() error { return utils.ValidateStruct(k) }
func (k StockExposureKey) Args() []any     { return []any{k.XchgCode, k.StkCode} }
func (k StockExposureKey) String() string  { return joinKey(k.XchgCode, k.StkCode) }

// StockExposureFields holds per-stock limits
type StockExposureFields struct {
	StkExpsBuyAmt  decimal.Decimal `db:"STK_EXPS_BUY_AMT" json:"stkExpsBuyAmt" validate:"gte=0"`
	StkExpsSellAmt decimal.Decimal `db:"STK_EXPS_SELL_AMT" json:"stkExpsSellAmt" validate:"gte=0"`
	MaxHoldingPct  decimal.Decimal `db:"MAX_HOLDING_PCT" json:"maxHoldingPct" validate:"gte=0,lte=100"`
}

// StockExposure is a row of STOCK_EXPOSURE
type StockExposure struct {
	StockExposureKey
	StockExposureFields
	workflow.State
}

func (e *StockExposure) RecordKey() StockExposureKey    { return e.StockExposureKey }
func (e *StockExposure) Payload() *StockExposureFields  { return &e.StockExposureFields }
func (e *StockExposure) WorkflowState() *workflow.State { return &e.State }
