package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/brokerage/rms-api/pkg/utils"
)

func TestCompositeKey_RejectsSeparatorInParts(t *testing.T) {
	left := ClientExposureKey{ClntCode: "A|B", BrchCode: "C"}
	right := ClientExposureKey{ClntCode: "A", BrchCode: "B|C"}
	assert.Equal(t, left.String(), right.String(), "parts containing the separator would share a key string")

	assert.Error(t, left.Validate())
	assert.Error(t, right.Validate())
	assert.Error(t, OrderGroupUserKey{GrpCode: "G1|U1", UsrID: "U2"}.Validate())
	assert.Error(t, ExchangeKey{XchgCode: "KLS", XchgPrefix: "M|Y", BrokerCode: "B01"}.Validate())

	assert.NoError(t, ClientExposureKey{ClntCode: "C-01", BrchCode: "HQ"}.Validate())
}

func TestStockFields_RequireISIN(t *testing.T) {
	fields := StockFields{
		StkLname:         "ABC Berhad",
		StkSname:         "ABC",
		LotSize:          100,
		StkLastDonePrice: decimal.RequireFromString("1.00"),
		StkStatus:        StatusActive,
	}

	err := utils.ValidateStruct(&fields)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "isin")

	fields.ISIN = "MYL1234OO004"
	assert.NoError(t, utils.ValidateStruct(&fields))

	fields.ISIN = "MY123"
	assert.Error(t, utils.ValidateStruct(&fields))
}
