package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Juninho21/split-de-pagamentos/internal/shared/errors"
)

// ErrorResponse represents a standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// Error sends an error response with the given status code.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// ErrorWithCode sends an error response with an error code.
func ErrorWithCode(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{Error: message, Code: code})
}

// BadRequest sends a 400 Bad Request response.
func BadRequest(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

// Unauthorized sends a 401 Unauthorized response.
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "unauthorized"
	}
	ErrorWithCode(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

// InternalError sends a 500 Internal Server Error response.
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "internal error"
	}
	ErrorWithCode(c, http.StatusInternalServerError, "INTERNAL_ERROR", message)
}

// Fail renders err. AppErrors keep their status, code and details; anything
// else becomes an opaque 500.
func Fail(c *gin.Context, err error) {
	if appErr, ok := apperrors.As(err); ok {
		c.JSON(apperrors.GetStatusCode(appErr), ErrorResponse{
			Error:   appErr.Message,
			Code:    appErr.Code,
			Details: appErr.Details,
		})
		return
	}
	_ = c.Error(err)
	InternalError(c, "")
}
