// Package httpkit provides HTTP response utilities.
// This is part of the platform layer and contains no business logic.
package httpkit

import (
	"net/http"

	"travelnest_backend/platform/apperr"

	"github.com/gin-gonic/gin"
)

const (
	// MsgUnauthorized is the body message for both 401 and 403 responses.
	MsgUnauthorized = "Unauthorized"
	// MsgInternal is the only message a 500 response ever carries.
	MsgInternal = "Internal server error"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// Error sends an error response with the given status code and message.
func Error(c *gin.Context, status int, message string, details interface{}) {
	c.JSON(status, ErrorResponse{Message: message, Errors: details})
}

// OK sends a 200 OK response with the given payload.
func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// HandleError maps domain errors to HTTP responses.
// Typed *apperr.Error values use their Kind for the status code. Anything
// else is recorded on the gin context for the request logger and answered
// with a generic 500. Returns true if an error was handled.
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	if domainErr, ok := apperr.As(err); ok {
		status := domainErr.HTTPStatus()
		if status >= http.StatusInternalServerError {
			_ = c.Error(err)
			c.JSON(status, ErrorResponse{Message: MsgInternal})
			return true
		}
		c.JSON(status, ErrorResponse{
			Message: domainErr.Message,
			Code:    domainErr.Code,
			Errors:  domainErr.Details,
		})
		return true
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Message: MsgInternal})
	return true
}
