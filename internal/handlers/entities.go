package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/brokerage/rms-api/internal/models"
)

// Key binders of the entity routes. Composite keys take one path segment per part.
var (
	CompanyKeyBinder = KeyBinder[models.CompanyKey]{
		Path: "/:coCode",
		Parse: func(c *gin.Context) models.CompanyKey {
			return models.CompanyKey{CoCode: c.Param("coCode")}
		},
	}

	CompanyBranchKeyBinder = KeyBinder[models.MstCoBrchKey]{
		Path: "/:coCode/:brchCode",
		Parse: func(c *gin.Context) models.MstCoBrchKey {
			return models.MstCoBrchKey{CoCode: c.Param("coCode"), BrchCode: c.Param("brchCode")}
		},
	}

	ClientKeyBinder = KeyBinder[models.ClientKey]{
		Path: "/:gcif",
		Parse: func(c *gin.Context) models.ClientKey {
			return models.ClientKey{GCIF: c.Param("gcif")}
		},
	}

	StockKeyBinder = KeyBinder[models.StockKey]{
		Path: "/:xchgCode/:stkCode",
		Parse: func(c *gin.Context) models.StockKey {
			return models.StockKey{XchgCode: c.Param("xchgCode"), StkCode: c.Param("stkCode")}
		},
	}

	ExchangeKeyBinder = KeyBinder[models.ExchangeKey]{
		Path: "/:xchgCode/:xchgPrefix/:brokerCode",
		Parse: func(c *gin.Context) models.ExchangeKey {
			return models.ExchangeKey{
				XchgCode:   c.Param("xchgCode"),
				XchgPrefix: c.Param("xchgPrefix"),
				BrokerCode: c.Param("brokerCode"),
			}
		},
	}

	TraderKeyBinder = KeyBinder[models.TraderKey]{
		Path: "/:dlrCode",
		Parse: func(c *gin.Context) models.TraderKey {
			return models.TraderKey{DlrCode: c.Param("dlrCode")}
		},
	}

	UserKeyBinder = KeyBinder[models.UserKey]{
		Path: "/:usrId",
		Parse: func(c *gin.Context) models.UserKey {
			return models.UserKey{UsrID: c.Param("usrId")}
		},
	}

	ClientExposureKeyBinder = KeyBinder[models.ClientExposureKey]{
		Path: "/:clntCode/:brchCode",
		Parse: func(c *gin.Context) models.ClientExposureKey {
			return models.ClientExposureKey{ClntCode: c.Param("clntCode"), BrchCode: c.Param("brchCode")}
		},
	}

	UserExposureKeyBinder = KeyBinder[models.UserExposureKey]{
		Path: "/:usrId",
		Parse: func(c *gin.Context) models.UserExposureKey {
			return models.UserExposureKey{UsrID: c.Param("usrId")}
		},
	}

	StockExposureKeyBinder = KeyBinder[models.StockExposureKey]{
		Path: "/:xchgCode/:stkCode",
		Parse: func(c *gin.Context) models.StockExposureKey {
			return models.StockExposureKey{XchgCode: c.Param("xchgCode"), StkCode: c.Param("stkCode")}
		},
	}

	ClientStockKeyBinder = KeyBinder[models.ClientStockKey]{
		Path: "/:brchCode/:clntCode/:stkCode",
		Parse: func(c *gin.Context) models.ClientStockKey {
			return models.ClientStockKey{
				BrchCode: c.Param("brchCode"),
				ClntCode: c.Param("clntCode"),
				StkCode:  c.Param("stkCode"),
			}
		},
	}

	OrderGroupKeyBinder = KeyBinder[models.OrderGroupKey]{
		Path: "/:grpCode",
		Parse: func(c *gin.Context) models.OrderGroupKey {
			return models.OrderGroupKey{GrpCode: c.Param("grpCode")}
		},
	}
)
