package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/brokerage/rms-api/internal/service"
	"github.com/brokerage/rms-api/internal/utils"
)

// AuditHandler serves the authorization audit trail
type AuditHandler struct {
	audit *service.AuditService
}

// NewAuditHandler creates a new audit handler instance
func NewAuditHandler(audit *service.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// History handles GET /audit/:entity?key=... where key is the "|" joined business key
func (h *AuditHandler) History(c *gin.Context) {
	entries, err := h.audit.History(c.Request.Context(), c.Param("entity"), c.Query("key"))
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}
	utils.SendOKResponse(c, gin.H{"items": entries})
}
