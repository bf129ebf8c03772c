package models

import (
	"github.com/brokerage/rms-api/internal/workflow"
	"github.com/brokerage/rms-api/pkg/utils"
)

// ClientKey identifies a client by its global customer information file number
type ClientKey struct {
	GCIF string `db:"GCIF" json:"gcif" validate:"required,max=20,excludes=0x7C"`
}

func (k ClientKey) Validate() error { return utils.ValidateStruct(k) }
func (k ClientKey) Args() []any     { return []any{k.GCIF} }
func (k ClientKey) String() string  { return k.GCIF }

// ClientFields holds the maintainable client attributes
type ClientFields struct {
	ClntName   string `db:"CLNT_NAME" json:"clntName" validate:"required,max=120"`
	ClntType   string `db:"CLNT_TYPE" json:"clntType" validate:"required,oneof=I C"`
	BrchCode   string `db:"BRCH_CODE" json:"brchCode" validate:"required,max=10"`
	IDNo       string `db:"ID_NO" json:"idNo" validate:"max=30"`
	Phone      string `db:"PHONE" json:"phone" validate:"max=32"`
	Email      string `db:"EMAIL" json:"email" validate:"omitempty,email,max=120"`
	Address    string `db:"ADDRESS" json:"address" validate:"max=255"`
	ClntStatus string `db:"CLNT_STATUS" json:"clntStatus" validate:"required,oneof=A I S"`
}

// Client is a row of CLIENT
type Client struct {
	ClientKey
	ClientFields
	workflow.State
}

func (c *Client) RecordKey() ClientKey           { return c.ClientKey }
func (c *Client) Payload() *ClientFields         { return &c.ClientFields }
func (c *Client) WorkflowState() *workflow.State { return &c.State }
