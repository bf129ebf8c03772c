package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brokerage/rms-api/internal/utils"
	"github.com/brokerage/rms-api/internal/workflow"
)

// KeyBinder maps the path parameters of an entity route to its business key
type KeyBinder[K any] struct {
	// Path is the route suffix holding the key parameters, e.g. "/:xchgCode/:stkCode"
	Path  string
	Parse func(c *gin.Context) K
}

// RecordResponse is a single record together with its staged update, if any
type RecordResponse[T any, P any] struct {
	Record  T  `json:"record"`
	Pending *P `json:"pendingChange,omitempty"`
}

// WorkflowHandler serves the maker-checker routes of one entity
type WorkflowHandler[K workflow.Key, P any, T any, PT workflow.Record[K, P, T]] struct {
	service *workflow.Service[K, P, T, PT]
	key     KeyBinder[K]
}

// NewWorkflowHandler creates a handler over service
func NewWorkflowHandler[K workflow.Key, P any, T any, PT workflow.Record[K, P, T]](service *workflow.Service[K, P, T, PT], key KeyBinder[K]) *WorkflowHandler[K, P, T, PT] {
	return &WorkflowHandler[K, P, T, PT]{
		service: service,
		key:     key,
	}
}

// Register mounts every route of the entity on g
func (h *WorkflowHandler[K, P, T, PT]) Register(g *gin.RouterGroup) {
	h.RegisterReads(g)
	g.POST("", h.Create)
	g.PUT(h.key.Path, h.Update)
	g.DELETE(h.key.Path, h.Delete)
	g.POST(h.key.Path+"/authorize", h.Authorize)
}

// RegisterReads mounts the read-only routes of the entity on g
func (h *WorkflowHandler[K, P, T, PT]) RegisterReads(g *gin.RouterGroup) {
	g.GET("", h.List)
	g.GET("/workflow", h.WorkflowList)
	g.GET(h.key.Path, h.Get)
	g.HEAD(h.key.Path, h.Exists)
	g.GET(h.key.Path+"/history", h.History)
}

// List handles GET / and returns a page of live records
func (h *WorkflowHandler[K, P, T, PT]) List(c *gin.Context) {
	lq, err := listQueryFromRequest(c, h.service.Limits())
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	page, err := h.service.List(c.Request.Context(), lq)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}
	utils.SendOKResponse(c, page)
}

// WorkflowList handles GET /workflow and returns a page of records in the isAuth state
func (h *WorkflowHandler[K, P, T, PT]) WorkflowList(c *gin.Context) {
	isAuth := workflow.Unauthorized
	if raw := c.Query("isAuth"); raw != "" {
		parsed, err := workflow.ParseAuthState(raw)
		if err != nil {
			utils.SendServiceError(c, validationError(err.Error()))
			return
		}
		isAuth = parsed
	}

	lq, err := listQueryFromRequest(c, h.service.Limits())
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	page, err := h.service.WorkflowList(c.Request.Context(), isAuth, lq)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}
	utils.SendOKResponse(c, page)
}

// Get handles GET /:key
func (h *WorkflowHandler[K, P, T, PT]) Get(c *gin.Context) {
	rec, err := h.service.Get(c.Request.Context(), h.key.Parse(c))
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}
	h.sendRecord(c, http.StatusOK, rec)
}

// Exists handles HEAD /:key. It answers 200 when a live record holds the key and 404 otherwise.
func (h *WorkflowHandler[K, P, T, PT]) Exists(c *gin.Context) {
	ok, err := h.service.Exists(c.Request.Context(), h.key.Parse(c))
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusOK)
}

// Create handles POST /
func (h *WorkflowHandler[K, P, T, PT]) Create(c *gin.Context) {
	rec := PT(new(T))
	if err := c.ShouldBindJSON(rec); err != nil {
		utils.SendBadRequestError(c, err.Error())
		return
	}
	maker, err := actorFromRequest(c, rec.WorkflowState().Remarks)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	out, err := h.service.Create(c.Request.Context(), rec, maker)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}
	h.sendRecord(c, http.StatusCreated, out)
}

// Update handles PUT /:key. The key in the body must match the path.
func (h *WorkflowHandler[K, P, T, PT]) Update(c *gin.Context) {
	rec := PT(new(T))
	if err := c.ShouldBindJSON(rec); err != nil {
		utils.SendBadRequestError(c, err.Error())
		return
	}
	maker, err := actorFromRequest(c, rec.WorkflowState().Remarks)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	out, err := h.service.Update(c.Request.Context(), h.key.Parse(c), rec, maker)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}
	h.sendRecord(c, http.StatusOK, out)
}

// Delete handles DELETE /:key and stages a soft delete
func (h *WorkflowHandler[K, P, T, PT]) Delete(c *gin.Context) {
	maker, err := actorFromRequest(c, c.Query("remarks"))
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	out, err := h.service.Delete(c.Request.Context(), h.key.Parse(c), maker)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}
	h.sendRecord(c, http.StatusOK, out)
}

// Authorize handles POST /:key/authorize
func (h *WorkflowHandler[K, P, T, PT]) Authorize(c *gin.Context) {
	decision, checker, ok := bindDecision(c)
	if !ok {
		return
	}

	out, err := h.service.Authorize(c.Request.Context(), h.key.Parse(c), decision, checker)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}
	h.sendRecord(c, http.StatusOK, out)
}

// History handles GET /:key/history
func (h *WorkflowHandler[K, P, T, PT]) History(c *gin.Context) {
	entries, err := h.service.History(c.Request.Context(), h.key.Parse(c))
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}
	utils.SendOKResponse(c, gin.H{"items": entries})
}

func (h *WorkflowHandler[K, P, T, PT]) sendRecord(c *gin.Context, status int, rec PT) {
	pending, err := h.service.Pending(rec)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}
	c.JSON(status, RecordResponse[PT, P]{Record: rec, Pending: pending})
}

// bindDecision reads an authorize body and the checker. It writes the error response itself.
func bindDecision(c *gin.Context) (workflow.Decision, workflow.Actor, bool) {
	var req AuthorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequestError(c, err.Error())
		return "", workflow.Actor{}, false
	}
	decision, err := workflow.ParseDecision(req.Decision)
	if err != nil {
		utils.SendServiceError(c, validationError(err.Error()))
		return "", workflow.Actor{}, false
	}
	checker, err := actorFromRequest(c, req.Remarks)
	if err != nil {
		utils.SendServiceError(c, err)
		return "", workflow.Actor{}, false
	}
	return decision, checker, true
}
