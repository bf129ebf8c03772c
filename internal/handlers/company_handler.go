package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brokerage/rms-api/internal/models"
	"github.com/brokerage/rms-api/internal/service"
	"github.com/brokerage/rms-api/internal/utils"
	"github.com/brokerage/rms-api/internal/workflow"
)

// BulkCompanyRequest is the body of the company bulk routes
type BulkCompanyRequest struct {
	Items   []*models.Company `json:"items" binding:"required"`
	Remarks string            `json:"remarks"`
}

// CompanyHandler serves the company routes including bulk staging
type CompanyHandler struct {
	*WorkflowHandler[models.CompanyKey, models.CompanyFields, models.Company, *models.Company]
	companies *service.CompanyService
}

// NewCompanyHandler creates a new company handler instance
func NewCompanyHandler(companies *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		WorkflowHandler: NewWorkflowHandler(companies.Service, CompanyKeyBinder),
		companies:       companies,
	}
}

// Register mounts the company routes on g
func (h *CompanyHandler) Register(g *gin.RouterGroup) {
	g.POST("/bulk", h.BulkCreate)
	g.PUT("/bulk", h.BulkUpdate)
	g.POST("/bulk/upsert", h.BulkUpsert)
	h.WorkflowHandler.Register(g)
}

// BulkCreate handles POST /companies/bulk
func (h *CompanyHandler) BulkCreate(c *gin.Context) {
	h.bulk(c, h.companies.BulkCreate)
}

// BulkUpdate handles PUT /companies/bulk
func (h *CompanyHandler) BulkUpdate(c *gin.Context) {
	h.bulk(c, h.companies.BulkUpdate)
}

// BulkUpsert handles POST /companies/bulk/upsert
func (h *CompanyHandler) BulkUpsert(c *gin.Context) {
	h.bulk(c, h.companies.BulkUpsert)
}

type bulkFunc func(ctx context.Context, items []*models.Company, maker workflow.Actor) ([]*models.Company, error)

func (h *CompanyHandler) bulk(c *gin.Context, run bulkFunc) {
	var req BulkCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequestError(c, err.Error())
		return
	}
	maker, err := actorFromRequest(c, req.Remarks)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	items, err := run(c.Request.Context(), req.Items, maker)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
