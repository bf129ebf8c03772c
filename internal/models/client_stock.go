package models

import (
	"github.com/brokerage/rms-api/internal/workflow"
	"github.com/brokerage/rms-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// ClientStockKey identifies a client holding
type ClientStockKey struct {
	BrchCode string `db:"BRCH_CODE" json:"brchCode" validate:"required,max=10,excludes=0x7C"`
	ClntCode string `db:"CLNT_CODE" json:"clntCode" validate:"required,max=20,excludes=0x7C"`
	StkCode  string `db:"STK_CODE" json:"stkCode" validate:"required,max=20,excludes=0x7C"`
}

func (k ClientStockKey) Validate() error { return utils.ValidateStruct(k) }
func (k ClientStockKey) Args() []any     { return []any{k.BrchCode, k.ClntCode, k.StkCode} }
func (k ClientStockKey) String() string  { return joinKey(k.BrchCode, k.ClntCode, k.StkCode) }

// ClientStockFields holds the position attributes
type ClientStockFields struct {
	XchgCode   string          `db:"XCHG_CODE" json:"xchgCode" validate:"required,max=10"`
	Qty        int64           `db:"QTY" json:"qty" validate:"gte=0"`
	PledgedQty int64           `db:"PLEDGED_QTY" json:"pledgedQty" validate:"gte=0,ltefield=Qty"`
	AvgPrice   decimal.Decimal `db:"AVG_PRICE" json:"avgPrice" validate:"gte=0"`
}

// ClientStock is a row of CLIENT_STOCK
type ClientStock struct {
	ClientStockKey
	ClientStockFields
	workflow.State
}

func (c *ClientStock) RecordKey() ClientStockKey      { return c.ClientStockKey }
func (c *ClientStock) Payload() *ClientStockFields    { return &c.ClientStockFields }
func (c *ClientStock) WorkflowState() *workflow.State { return &c.State }
