package service

import (
	"fmt"

	"github.com/brokerage/rms-api/internal/models"
	"github.com/brokerage/rms-api/pkg/utils"
	"github.com/shopspring/decimal"
)

func validateCompany(f *models.CompanyFields) error {
	if err := utils.ValidateStruct(f); err != nil {
		return err
	}
	return checkTotalLimit("coExpsTotalAmt", f.CoExpsTotalAmt, f.CoExpsBuyAmt, f.CoExpsSellAmt)
}

func validateUserExposure(f *models.UserExposureFields) error {
	if err := utils.ValidateStruct(f); err != nil {
		return err
	}
	return checkTotalLimit("usrExpsTotalAmt", f.UsrExpsTotalAmt, f.UsrExpsBuyAmt, f.UsrExpsSellAmt)
}

func validateClientExposure(f *models.ClientExposureFields) error {
	if err := utils.ValidateStruct(f); err != nil {
		return err
	}
	if f.ClntExpsNetAmt.GreaterThan(f.ClntExpsBuyAmt.Add(f.ClntExpsSellAmt)) {
		return fmt.Errorf("clntExpsNetAmt must not exceed the sum of clntExpsBuyAmt and clntExpsSellAmt")
	}
	return nil
}

// checkTotalLimit rejects a total limit below either side's limit. A zero total means unlimited.
func checkTotalLimit(field string, total, buy, sell decimal.Decimal) error {
	if total.IsZero() {
		return nil
	}
	if total.LessThan(buy) || total.LessThan(sell) {
		return fmt.Errorf("%s must not be less than the buy or sell limit", field)
	}
	return nil
}
