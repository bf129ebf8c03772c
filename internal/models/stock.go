package models

import (
	"github.com/brokerage/rms-api/internal/workflow"
	"github.com/brokerage/rms-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// StockKey identifies a listed stock on an exchange
type StockKey struct {
	XchgCode string `db:"XCHG_CODE" json:"xchgCode" validate:"required,max=10,excludes=0x7C"`
	StkCode  string `db:"STK_CODE" json:"stkCode" validate:"required,max=20,excludes=0x7C"`
}

func (k StockKey) Validate() error { return utils.ValidateStruct(k) }
func (k StockKey) Args() []any     { return []any{k.XchgCode, k.StkCode} }
func (k StockKey) String() string  { return joinKey(k.XchgCode, k.StkCode) }

// StockFields holds the maintainable stock attributes
type StockFields struct {
	StkLname         string          `db:"STK_LNAME" json:"stkLname" validate:"required,max=120"`
	StkSname         string          `db:"STK_SNAME" json:"stkSname" validate:"required,max=40"`
	ISIN             string          `db:"ISIN" json:"isin" validate:"required,len=12,alphanum"`
	SectorCode       string          `db:"SECTOR_CODE" json:"sectorCode" validate:"max=10"`
	LotSize          int             `db:"LOT_SIZE" json:"lotSize" validate:"gt=0"`
	StkLastDonePrice decimal.Decimal `db:"STK_LAST_DONE_PRICE" json:"stkLastDonePrice" validate:"gte=0"`
	StkStatus        string          `db:"STK_STATUS" json:"stkStatus" validate:"required,oneof=A I S"`
}

// Stock is a row of STOCK
type Stock struct {
	StockKey
	StockFields
	workflow.State
}

func (s *Stock) RecordKey() StockKey            { return s.StockKey }
func (s *Stock) Payload() *StockFields          { return &s.StockFields }
func (s *Stock) WorkflowState() *workflow.State { return &s.State }
