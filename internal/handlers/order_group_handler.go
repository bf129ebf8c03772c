package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brokerage/rms-api/internal/models"
	"github.com/brokerage/rms-api/internal/service"
	"github.com/brokerage/rms-api/internal/utils"
	"github.com/brokerage/rms-api/internal/workflow"
)

// OrderGroupRequest is the body of the order group write routes
type OrderGroupRequest struct {
	Group   *models.OrderGroup       `json:"group" binding:"required"`
	Users   []*models.OrderGroupUser `json:"users"`
	Remarks string                   `json:"remarks"`
}

// OrderGroupHandler serves order groups as aggregates of a header and its members
type OrderGroupHandler struct {
	groups  *WorkflowHandler[models.OrderGroupKey, models.OrderGroupFields, models.OrderGroup, *models.OrderGroup]
	service *service.OrderGroupService
}

// NewOrderGroupHandler creates a new order group handler instance
func NewOrderGroupHandler(svc *service.OrderGroupService) *OrderGroupHandler {
	return &OrderGroupHandler{
		groups:  NewWorkflowHandler(svc.Service, OrderGroupKeyBinder),
		service: svc,
	}
}

// Register mounts the order group routes on g
func (h *OrderGroupHandler) Register(g *gin.RouterGroup) {
	g.GET("", h.groups.List)
	g.GET("/workflow", h.groups.WorkflowList)
	g.HEAD("/:grpCode", h.groups.Exists)
	g.GET("/:grpCode/history", h.groups.History)

	g.POST("", h.Create)
	g.GET("/:grpCode", h.Get)
	g.PUT("/:grpCode", h.Update)
	g.DELETE("/:grpCode", h.Delete)
	g.POST("/:grpCode/authorize", h.Authorize)
	g.POST("/:grpCode/users/:usrId/authorize", h.AuthorizeMember)
}

// Create handles POST /order-groups
func (h *OrderGroupHandler) Create(c *gin.Context) {
	req, maker, ok := h.bind(c)
	if !ok {
		return
	}
	out, err := h.service.CreateWithUsers(c.Request.Context(), req.Group, req.Users, maker)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// Update handles PUT /order-groups/:grpCode
func (h *OrderGroupHandler) Update(c *gin.Context) {
	req, maker, ok := h.bind(c)
	if !ok {
		return
	}
	if req.Group.GrpCode != c.Param("grpCode") {
		utils.SendServiceError(c, validationError("record key does not match the requested key"))
		return
	}
	out, err := h.service.UpdateWithUsers(c.Request.Context(), req.Group, req.Users, maker)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}
	utils.SendOKResponse(c, out)
}

// Get handles GET /order-groups/:grpCode and returns the header with every member row
func (h *OrderGroupHandler) Get(c *gin.Context) {
	out, err := h.service.GetWithUsers(c.Request.Context(), OrderGroupKeyBinder.Parse(c))
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}
	utils.SendOKResponse(c, out)
}

// Delete handles DELETE /order-groups/:grpCode
func (h *OrderGroupHandler) Delete(c *gin.Context) {
	maker, err := actorFromRequest(c, c.Query("remarks"))
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}
	out, err := h.service.DeleteGroup(c.Request.Context(), OrderGroupKeyBinder.Parse(c), maker)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}
	utils.SendOKResponse(c, out)
}

// Authorize handles POST /order-groups/:grpCode/authorize
func (h *OrderGroupHandler) Authorize(c *gin.Context) {
	decision, checker, ok := bindDecision(c)
	if !ok {
		return
	}
	out, err := h.service.Authorize(c.Request.Context(), OrderGroupKeyBinder.Parse(c), decision, checker)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}
	utils.SendOKResponse(c, out)
}

// AuthorizeMember handles POST /order-groups/:grpCode/users/:usrId/authorize
func (h *OrderGroupHandler) AuthorizeMember(c *gin.Context) {
	decision, checker, ok := bindDecision(c)
	if !ok {
		return
	}
	key := models.OrderGroupUserKey{GrpCode: c.Param("grpCode"), UsrID: c.Param("usrId")}
	out, err := h.service.AuthorizeMember(c.Request.Context(), key, decision, checker)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}
	utils.SendOKResponse(c, out)
}

func (h *OrderGroupHandler) bind(c *gin.Context) (*OrderGroupRequest, workflow.Actor, bool) {
	var req OrderGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequestError(c, err.Error())
		return nil, workflow.Actor{}, false
	}
	maker, err := actorFromRequest(c, req.Remarks)
	if err != nil {
		utils.SendServiceError(c, err)
		return nil, workflow.Actor{}, false
	}
	return &req, maker, true
}
