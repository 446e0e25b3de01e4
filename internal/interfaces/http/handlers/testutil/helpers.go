package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/application/user/dto"
	"github.com/orris-inc/helpdesk/internal/shared/constants"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// NewTestContext creates a test gin.Context with the given method, path, and optional JSON body.
func NewTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()

	var req *http.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, path, nil)
	case string:
		req = httptest.NewRequest(method, path, strings.NewReader(b))
		req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	default:
		jsonBytes, _ := json.Marshal(b)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBytes))
		req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	return c, w
}

// NewFormContext creates a test gin.Context carrying an urlencoded form body.
func NewFormContext(method, path string, form url.Values) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeForm)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	return c, w
}

// SetAuthContext stores an authenticated user the way the auth middleware does.
func SetAuthContext(c *gin.Context, userID uint, role string) {
	current := &dto.UserDTO{
		ID:        userID,
		Name:      "Test User",
		Email:     "user@example.com",
		Role:      role,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	c.Set(constants.ContextKeyUserID, current.ID)
	c.Set(constants.ContextKeyUserEmail, current.Email)
	c.Set(constants.ContextKeyUserRole, current.Role)
	c.Set(constants.ContextKeyUser, current)
}

// SetURLParam sets a URL parameter on the gin context.
func SetURLParam(c *gin.Context, key, value string) {
	c.Params = append(c.Params, gin.Param{Key: key, Value: value})
}

// SetQueryParams sets query parameters on the gin context.
func SetQueryParams(c *gin.Context, params map[string]string) {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	c.Request.URL.RawQuery = q.Encode()
}

// ParseResponse parses the JSON response body into the target struct.
func ParseResponse(w *httptest.ResponseRecorder, target interface{}) error {
	return json.Unmarshal(w.Body.Bytes(), target)
}

// ErrorBody mirrors utils.ErrorBody for test assertions.
type ErrorBody struct {
	Success bool       `json:"success"`
	Error   *ErrorInfo `json:"error"`
	Detail  string     `json:"detail"`
}

// ErrorInfo mirrors utils.ErrorInfo for test assertions.
type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ParseError decodes an error envelope.
func ParseError(w *httptest.ResponseRecorder) (*ErrorBody, error) {
	var body ErrorBody
	if err := ParseResponse(w, &body); err != nil {
		return nil, err
	}
	return &body, nil
}

// NewMockLogger returns a logger that discards output.
func NewMockLogger() logger.Interface {
	return logger.NewDiscardLogger()
}
