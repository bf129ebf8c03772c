package dao

import (
	"github.com/brokerage/rms-api/internal/database"
	"github.com/brokerage/rms-api/internal/models"
	"github.com/brokerage/rms-api/internal/workflow"
)

type (
	CompanyStore        = workflow.Store[models.CompanyKey, models.CompanyFields, models.Company, *models.Company]
	MstCoBrchStore      = workflow.Store[models.MstCoBrchKey, models.MstCoBrchFields, models.MstCoBrch, *models.MstCoBrch]
	ClientStore         = workflow.Store[models.ClientKey, models.ClientFields, models.Client, *models.Client]
	StockStore          = workflow.Store[models.StockKey, models.StockFields, models.Stock, *models.Stock]
	ExchangeStore       = workflow.Store[models.ExchangeKey, models.ExchangeFields, models.Exchange, *models.Exchange]
	TraderStore         = workflow.Store[models.TraderKey, models.TraderFields, models.Trader, *models.Trader]
	UserStore           = workflow.Store[models.UserKey, models.UserFields, models.User, *models.User]
	ClientExposureStore = workflow.Store[models.ClientExposureKey, models.ClientExposureFields, models.ClientExposure, *models.ClientExposure]
	UserExposureStore   = workflow.Store[models.UserExposureKey, models.UserExposureFields, models.UserExposure, *models.UserExposure]
	StockExposureStore  = workflow.Store[models.StockExposureKey, models.StockExposureFields, models.StockExposure, *models.StockExposure]
	ClientStockStore    = workflow.Store[models.ClientStockKey, models.ClientStockFields, models.ClientStock, *models.ClientStock]
	OrderGroupStore     = workflow.Store[models.OrderGroupKey, models.OrderGroupFields, models.OrderGroup, *models.OrderGroup]
	OrderGroupUserStore = workflow.Store[models.OrderGroupUserKey, models.OrderGroupUserFields, models.OrderGroupUser, *models.OrderGroupUser]
)

// NewCompanyStore creates the COMPANY store
func NewCompanyStore(db *database.DB) *CompanyStore {
	return workflow.NewStore[models.CompanyKey, models.CompanyFields, models.Company, *models.Company](db, CompanyTable)
}

// NewMstCoBrchStore creates the MST_CO_BRCH store
func NewMstCoBrchStore(db *database.DB) *MstCoBrchStore {
	return workflow.NewStore[models.MstCoBrchKey, models.MstCoBrchFields, models.MstCoBrch, *models.MstCoBrch](db, MstCoBrchTable)
}

// NewClientStore creates the CLIENT store
func NewClientStore(db *database.DB) *ClientStore {
	return workflow.NewStore[models.ClientKey, models.ClientFields, models.Client, *models.Client](db, ClientTable)
}

// NewStockStore creates the STOCK store
func NewStockStore(db *database.DB) *StockStore {
	return workflow.NewStore[models.StockKey, models.StockFields, models.Stock, *models.Stock](db, StockTable)
}

// NewExchangeStore creates the EXCHANGE store
func NewExchangeStore(db *database.DB) *ExchangeStore {
	return workflow.NewStore[models.ExchangeKey, models.ExchangeFields, models.Exchange, *models.Exchange](db, ExchangeTable)
}

// NewTraderStore creates the TRADER store
func NewTraderStore(db *database.DB) *TraderStore {
	return workflow.NewStore[models.TraderKey, models.TraderFields, models.Trader, *models.Trader](db, TraderTable)
}

// NewUserStore creates the USR store
func NewUserStore(db *database.DB) *UserStore {
	return workflow.NewStore[models.UserKey, models.UserFields, models.User, *models.User](db, UserTable)
}

// NewClientExposureStore creates the CLIENT_EXPOSURE store
func NewClientExposureStore(db *database.DB) *ClientExposureStore {
	return workflow.NewStore[models.ClientExposureKey, models.ClientExposureFields, models.ClientExposure, *models.ClientExposure](db, ClientExposureTable)
}

// NewUserExposureStore creates the USER_EXPOSURE store
func NewUserExposureStore(db *database.DB) *UserExposureStore {
	return workflow.NewStore[models.UserExposureKey, models.UserExposureFields, models.UserExposure, *models.UserExposure](db, UserExposureTable)
}

// NewStockExposureStore creates the STOCK_EXPOSURE store
func NewStockExposureStore(db *database.DB) *StockExposureStore {
	return workflow.NewStore[models.StockExposureKey, models.StockExposureFields, models.StockExposure, *models.StockExposure](db, StockExposureTable)
}

// NewClientStockStore creates the CLIENT_STOCK store
func NewClientStockStore(db *database.DB) *ClientStockStore {
	return workflow.NewStore[models.ClientStockKey, models.ClientStockFields, models.ClientStock, *models.ClientStock](db, ClientStockTable)
}

// NewOrderGroupStore creates the ORDER_GROUP store
func NewOrderGroupStore(db *database.DB) *OrderGroupStore {
	return workflow.NewStore[models.OrderGroupKey, models.OrderGroupFields, models.OrderGroup, *models.OrderGroup](db, OrderGroupTable)
}

// NewOrderGroupUserStore creates the ORDER_GROUP_USER store
func NewOrderGroupUserStore(db *database.DB) *OrderGroupUserStore {
	return workflow.NewStore[models.OrderGroupUserKey, models.OrderGroupUserFields, models.OrderGroupUser, *models.OrderGroupUser](db, OrderGroupUserTable)
}
