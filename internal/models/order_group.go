package models

import (
	"github.com/brokerage/rms-api/internal/workflow"
	"github.com/brokerage/rms-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// OrderGroupKey identifies an order group
type OrderGroupKey struct {
	GrpCode string `db:"GRP_CODE" json:"grpCode" validate:"required,max=20,excludes=0x7C"`
}

func (k OrderGroupKey) Validate() error { return utils.ValidateStruct(k) }
func (k OrderGroupKey) Args() []any     { return []any{k.GrpCode} }
func (k OrderGroupKey) String() string  { return k.GrpCode }

// OrderGroupFields holds the group header attributes
type OrderGroupFields struct {
	GrpName string `db:"GRP_NAME" json:"grpName" validate:"required,max=120"`
	GrpDesc string `db:"GRP_DESC" json:"grpDesc" validate:"max=255"`
	GrpType string `db:"GRP_TYPE" json:"grpType" validate:"required,oneof=N D"`
}

// OrderGroup is a row of ORDER_GROUP
type OrderGroup struct {
	OrderGroupKey
	OrderGroupFields
	workflow.State
}

func (g *OrderGroup) RecordKey() OrderGroupKey       { return g.OrderGroupKey }
func (g *OrderGroup) Payload() *OrderGroupFields     { return &g.OrderGroupFields }
func (g *OrderGroup) WorkflowState() *workflow.State { return &g.State }

// OrderGroupUserKey identifies a user's membership of an order group
type OrderGroupUserKey struct {
	GrpCode string `db:"GRP_CODE" json:"grpCode" validate:"required,max=20,excludes=0x7C"`
	UsrID   string `db:"USR_ID" json:"usrId" validate:"required,max=20,excludes=0x7C"`
}

func (k OrderGroupUserKey) Validate() error { return utils.ValidateStruct(k) }
func (k OrderGroupUserKey) Args() []any     { return []any{k.GrpCode, k.UsrID} }
func (k OrderGroupUserKey) String() string  { return joinKey(k.GrpCode, k.UsrID) }

// OrderGroupUserFields holds a member's order permissions
type OrderGroupUserFields struct {
	CanBuy      bool            `db:"CAN_BUY" json:"canBuy"`
	CanSell     bool            `db:"CAN_SELL" json:"canSell"`
	MaxOrderQty int64           `db:"MAX_ORDER_QTY" json:"maxOrderQty" validate:"gte=0"`
	MaxOrderAmt decimal.Decimal `db:"MAX_ORDER_AMT" json:"maxOrderAmt" validate:"gte=0"`
}

// OrderGroupUser is a row of ORDER_GROUP_USER
type OrderGroupUser struct {
	OrderGroupUserKey
	OrderGroupUserFields
	workflow.State
}

func (u *OrderGroupUser) RecordKey() OrderGroupUserKey   { return u.OrderGroupUserKey }
func (u *OrderGroupUser) Payload() *OrderGroupUserFields { return &u.OrderGroupUserFields }
func (u *OrderGroupUser) WorkflowState() *workflow.State { return &u.State }

// OrderGroupWithUsers is an order group together with its member rows
type OrderGroupWithUsers struct {
	Group *OrderGroup       `json:"group"`
	Users []*OrderGroupUser `json:"users"`
}
