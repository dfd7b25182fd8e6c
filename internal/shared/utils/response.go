package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/leadrouter/internal/shared/constants"
	"github.com/orris-inc/leadrouter/internal/shared/errors"
)

// APIResponse is the standard envelope for every JSON response this
// service returns.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorInfo carries the error type, message, and optional details.
type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse sends a successful response with a custom status code.
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// CreatedResponse sends a 201 response.
func CreatedResponse(c *gin.Context, data interface{}, message ...string) {
	resp := APIResponse{Success: true, Data: data}
	if len(message) > 0 {
		resp.Message = message[0]
	}
	c.JSON(http.StatusCreated, resp)
}

// ErrorResponse sends an error response with a custom status code and
// plain message, used where no AppError exists yet (e.g. auth failures
// raised directly by middleware).
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error:   &ErrorInfo{Type: "error", Message: message},
	})
}

// ErrorResponseWithError maps an AppError (or any error) to a JSON error
// response. Non-AppErrors never leak internal details to the client.
func ErrorResponseWithError(c *gin.Context, err error) {
	var statusCode int
	var errorInfo ErrorInfo

	if appErr := errors.GetAppError(err); appErr != nil {
		statusCode = appErr.Code
		errorInfo = ErrorInfo{
			Type:    string(appErr.Type),
			Message: appErr.Message,
			Details: appErr.Details,
		}
	} else {
		statusCode = http.StatusInternalServerError
		errorInfo = ErrorInfo{
			Type:    string(errors.ErrorTypeInternal),
			Message: constants.ErrMsgInternalServerError,
		}
	}

	c.JSON(statusCode, APIResponse{Success: false, Error: &errorInfo})
}
