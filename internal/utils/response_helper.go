package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brokerage/rms-api/internal/system/error/serviceerror"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// SendErrorResponse sends an error JSON response
func SendErrorResponse(c *gin.Context, statusCode int, errCode, message, details string) {
	c.JSON(statusCode, ErrorResponse{
		Code:    errCode,
		Message: message,
		Details: details,
	})
}

// SendCreatedResponse sends a 201 Created response
func SendCreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// SendOKResponse sends a 200 OK response
func SendOKResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// SendNoContentResponse sends a 204 No Content response
func SendNoContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// SendBadRequestError sends a 400 response for a request that could not be parsed
func SendBadRequestError(c *gin.Context, details string) {
	SendErrorResponse(c, http.StatusBadRequest, serviceerror.ValidationError.Code,
		serviceerror.ValidationError.ErrorDescription, details)
}

// SendServiceError maps err to its HTTP status and sends it
func SendServiceError(c *gin.Context, err error) {
	svcErr := serviceerror.ToServiceError(err)
	if svcErr.Kind == serviceerror.KindStore {
		// store failures keep their cause out of the response
		_ = c.Error(err)
		SendErrorResponse(c, http.StatusInternalServerError, svcErr.Code, svcErr.ErrorDescription, "")
		return
	}
	SendErrorResponse(c, StatusCode(svcErr.Kind), svcErr.Code, svcErr.Name, svcErr.ErrorDescription)
}

// StatusCode returns the HTTP status of an error kind
func StatusCode(kind serviceerror.Kind) int {
	switch kind {
	case serviceerror.KindValidation:
		return http.StatusBadRequest
	case serviceerror.KindNotFound:
		return http.StatusNotFound
	case serviceerror.KindConflict:
		return http.StatusConflict
	case serviceerror.KindInvalidState:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
