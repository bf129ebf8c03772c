package service

import (
	"github.com/brokerage/rms-api/internal/dao"
	"github.com/brokerage/rms-api/internal/models"
	"github.com/brokerage/rms-api/internal/workflow"
)

type (
	CompanyBranchService  = workflow.Service[models.MstCoBrchKey, models.MstCoBrchFields, models.MstCoBrch, *models.MstCoBrch]
	ClientService         = workflow.Service[models.ClientKey, models.ClientFields, models.Client, *models.Client]
	StockService          = workflow.Service[models.StockKey, models.StockFields, models.Stock, *models.Stock]
	ExchangeService       = workflow.Service[models.ExchangeKey, models.ExchangeFields, models.Exchange, *models.Exchange]
	TraderService         = workflow.Service[models.TraderKey, models.TraderFields, models.Trader, *models.Trader]
	UserService           = workflow.Service[models.UserKey, models.UserFields, models.User, *models.User]
	ClientExposureService = workflow.Service[models.ClientExposureKey, models.ClientExposureFields, models.ClientExposure, *models.ClientExposure]
	UserExposureService   = workflow.Service[models.UserExposureKey, models.UserExposureFields, models.UserExposure, *models.UserExposure]
	StockExposureService  = workflow.Service[models.StockExposureKey, models.StockExposureFields, models.StockExposure, *models.StockExposure]
	ClientStockService    = workflow.Service[models.ClientStockKey, models.ClientStockFields, models.ClientStock, *models.ClientStock]
	OrderGroupUserService = workflow.Service[models.OrderGroupUserKey, models.OrderGroupUserFields, models.OrderGroupUser, *models.OrderGroupUser]
)

// Registry holds one service per maintained entity
type Registry struct {
	Company        *CompanyService
	CompanyBranch  *CompanyBranchService
	Client         *ClientService
	Stock          *StockService
	Exchange       *ExchangeService
	Trader         *TraderService
	User           *UserService
	ClientExposure *ClientExposureService
	UserExposure   *UserExposureService
	StockExposure  *StockExposureService
	ClientStock    *ClientStockService
	OrderGroup     *OrderGroupService
	Audit          *AuditService
}

// NewRegistry wires every entity service over deps.DB. A nil deps.Trail is replaced
// with an audit trail on the same connection.
func NewRegistry(deps workflow.Deps) *Registry {
	if deps.Trail == nil {
		deps.Trail = workflow.NewAuditTrail(deps.DB)
	}
	db := deps.DB

	return &Registry{
		Company:        NewCompanyService(deps),
		CompanyBranch:  workflow.NewService(deps, dao.NewMstCoBrchStore(db), nil),
		Client:         workflow.NewService(deps, dao.NewClientStore(db), nil),
		Stock:          workflow.NewService(deps, dao.NewStockStore(db), nil),
		Exchange:       workflow.NewService(deps, dao.NewExchangeStore(db), nil),
		Trader:         workflow.NewService(deps, dao.NewTraderStore(db), nil),
		User:           workflow.NewService(deps, dao.NewUserStore(db), nil),
		ClientExposure: workflow.NewService(deps, dao.NewClientExposureStore(db), validateClientExposure),
		UserExposure:   workflow.NewService(deps, dao.NewUserExposureStore(db), validateUserExposure),
		StockExposure:  workflow.NewService(deps, dao.NewStockExposureStore(db), nil),
		ClientStock:    workflow.NewService(deps, dao.NewClientStockStore(db), nil),
		OrderGroup:     NewOrderGroupService(deps),
		Audit:          NewAuditService(deps.Trail),
	}
}
