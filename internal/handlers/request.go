package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/brokerage/rms-api/internal/system/error/serviceerror"
	"github.com/brokerage/rms-api/internal/workflow"
	"github.com/brokerage/rms-api/pkg/utils"
)

// Request headers carrying the caller identity
const (
	HeaderUserID    = "X-User-ID"
	HeaderTransDate = "X-Trans-Date"
)

// listParams are query parameters with a fixed meaning; any other parameter is an entity filter
var listParams = map[string]bool{
	"pageNumber":    true,
	"pageSize":      true,
	"search":        true,
	"sortColumn":    true,
	"sortDirection": true,
	"isAuth":        true,
}

// AuthorizeRequest is the body of an authorize call
type AuthorizeRequest struct {
	Decision string `json:"decision" binding:"required"`
	Remarks  string `json:"remarks"`
}

// actorFromRequest builds the maker or checker of a request from its headers
func actorFromRequest(c *gin.Context, remarks string) (workflow.Actor, error) {
	raw := strings.TrimSpace(c.GetHeader(HeaderUserID))
	if raw == "" {
		return workflow.Actor{}, validationError(HeaderUserID + " header is required")
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		return workflow.Actor{}, validationError(HeaderUserID + " must be a positive integer")
	}

	actor := workflow.Actor{
		UserID:    userID,
		IPAddress: c.ClientIP(),
		Remarks:   remarks,
	}
	if value := strings.TrimSpace(c.GetHeader(HeaderTransDate)); value != "" {
		transDate, err := utils.ParseBusinessDate(value)
		if err != nil {
			return workflow.Actor{}, validationError(HeaderTransDate + " must be a date in YYYY-MM-DD format")
		}
		actor.TransDate = transDate
	}
	return actor, nil
}

// listQueryFromRequest reads paging, search, sort and filter parameters
func listQueryFromRequest(c *gin.Context, limits workflow.Limits) (workflow.ListQuery, error) {
	lq := workflow.ListQuery{
		PageNumber:    1,
		PageSize:      limits.DefaultPageSize,
		SearchTerm:    c.Query("search"),
		SortColumn:    c.Query("sortColumn"),
		SortDirection: workflow.SortDirection(c.Query("sortDirection")),
	}

	var err error
	if lq.PageNumber, err = intParam(c, "pageNumber", lq.PageNumber); err != nil {
		return lq, err
	}
	if lq.PageSize, err = intParam(c, "pageSize", lq.PageSize); err != nil {
		return lq, err
	}

	for name, values := range c.Request.URL.Query() {
		if listParams[name] || len(values) == 0 {
			continue
		}
		if lq.Filters == nil {
			lq.Filters = make(map[string]string)
		}
		lq.Filters[name] = values[0]
	}
	return lq, nil
}

func intParam(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, validationError(fmt.Sprintf("%s must be an integer", name))
	}
	return n, nil
}

func validationError(description string) error {
	return serviceerror.CustomServiceError(serviceerror.ValidationError, description)
}
