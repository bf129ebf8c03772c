package models

import (
	"github.com/brokerage/rms-api/internal/workflow"
	"github.com/brokerage/rms-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// CompanyKey identifies a brokerage company
type CompanyKey struct {
	CoCode string `db:"CO_CODE" json:"coCode" validate:"required,min=1,max=6,alphanum"`
}

func (k CompanyKey) Validate() error { return utils.ValidateStruct(k) }
func (k CompanyKey) Args() []any     { return []any{k.CoCode} }
func (k CompanyKey) String() string  { return k.CoCode }

// CompanyFields holds the maintainable company attributes and company-wide exposure limits
type CompanyFields struct {
	CoName         string          `db:"CO_NAME" json:"coName" validate:"required,max=120"`
	CoAddr         string          `db:"CO_ADDR" json:"coAddr" validate:"max=255"`
	CoPhone        string          `db:"CO_PHONE" json:"coPhone" validate:"max=32"`
	CoEmail        string          `db:"CO_EMAIL" json:"coEmail" validate:"omitempty,email,max=120"`
	CoExpsBuyAmt   decimal.Decimal `db:"CO_EXPS_BUY_AMT" json:"coExpsBuyAmt" validate:"gte=0"`
	CoExpsSellAmt  decimal.Decimal `db:"CO_EXPS_SELL_AMT" json:"coExpsSellAmt" validate:"gte=0"`
	CoExpsTotalAmt decimal.Decimal `db:"CO_EXPS_TOTAL_AMT" json:"coExpsTotalAmt" validate:"gte=0"`
}

// Company is a row of COMPANY
type Company struct {
	CompanyKey
	CompanyFields
	workflow.State
}

func (c *Company) RecordKey() CompanyKey          { return c.CompanyKey }
func (c *Company) Payload() *CompanyFields        { return &c.CompanyFields }
func (c *Company) WorkflowState() *workflow.State { return &c.State }
