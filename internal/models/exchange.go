package models

import (
	"github.com/brokerage/rms-api/internal/workflow"
	"github.com/brokerage/rms-api/pkg/utils"
)

// ExchangeKey identifies an exchange membership of a broker
type ExchangeKey struct {
	XchgCode   string `db:"XCHG_CODE" json:"xchgCode" validate:"required,max=10,excludes=0x7C"`
	XchgPrefix string `db:"XCHG_PREFIX" json:"xchgPrefix" validate:"required,max=10,excludes=0x7C"`
	BrokerCode string `db:"BROKER_CODE" json:"brokerCode" validate:"required,max=10,excludes=0x7C"`
}

func (k ExchangeKey) Validate() error { return utils.ValidateStruct(k) }
func (k ExchangeKey) Args() []any     { return []any{k.XchgCode, k.XchgPrefix, k.BrokerCode} }
func (k ExchangeKey) String() string  { return joinKey(k.XchgCode, k.XchgPrefix, k.BrokerCode) }

// ExchangeFields holds the maintainable exchange attributes
type ExchangeFields struct {
	XchgName   string `db:"XCHG_NAME" json:"xchgName" validate:"required,max=120"`
	Currency   string `db:"CURRENCY" json:"currency" validate:"required,len=3,alpha,uppercase"`
	Country    string `db:"COUNTRY" json:"country" validate:"max=60"`
	XchgStatus string `db:"XCHG_STATUS" json:"xchgStatus" validate:"required,oneof=A I S"`
}

// Exchange is a row of EXCHANGE
type Exchange struct {
	ExchangeKey
	ExchangeFields
	workflow.State
}

func (e *Exchange) RecordKey() ExchangeKey         { return e.ExchangeKey }
func (e *Exchange) Payload() *ExchangeFields       { return &e.ExchangeFields }
func (e *Exchange) WorkflowState() *workflow.State { return &e.State }
