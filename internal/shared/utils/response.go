package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/shared/constants"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
)

// ErrorBody is the envelope written for every failed request. Detail repeats
// the message for clients that expect a top level "detail" string.
type ErrorBody struct {
	Success bool       `json:"success"`
	Error   *ErrorInfo `json:"error"`
	Detail  string     `json:"detail"`
}

// ErrorInfo represents error information in API response
type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// MessageResponse is used by endpoints that only report a message.
type MessageResponse struct {
	Message string `json:"message"`
}

// SuccessResponse writes data as the response body with status 200
func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// CreatedResponse writes the created resource with status 201
func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// ListSuccessResponse writes items as a JSON array and reports the number of
// matching rows in X-Total-Count.
func ListSuccessResponse[T any](c *gin.Context, items []T, total int64) {
	if items == nil {
		items = []T{}
	}
	c.Header(constants.HeaderXTotalCount, formatInt(total))
	c.JSON(http.StatusOK, items)
}

// NoContentResponse sends a no content response
func NoContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// ErrorResponse sends an error response with custom status code and message
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	writeError(c, statusCode, ErrorInfo{
		Type:    "error",
		Message: message,
	})
}

// ErrorResponseWithError maps err onto the error envelope. Errors that are not
// AppErrors are reported as internal errors without their text.
func ErrorResponseWithError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		writeError(c, http.StatusInternalServerError, ErrorInfo{
			Type:    string(errors.ErrorTypeInternal),
			Message: constants.ErrMsgInternalServerError,
		})
		return
	}

	writeError(c, appErr.Code, ErrorInfo{
		Type:    string(appErr.Type),
		Message: appErr.Message,
		Details: appErr.Details,
	})
}

func writeError(c *gin.Context, statusCode int, info ErrorInfo) {
	if statusCode == http.StatusUnauthorized {
		c.Header(constants.HeaderWWWAuthenticate, constants.AuthSchemeBearer)
	}
	c.JSON(statusCode, ErrorBody{
		Success: false,
		Error:   &info,
		Detail:  info.Message,
	})
}
