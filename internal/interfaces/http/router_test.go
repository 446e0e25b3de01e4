package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/orris-inc/helpdesk/internal/domain/access"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/infrastructure/config"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
	sharedConfig "github.com/orris-inc/helpdesk/internal/shared/config"
	"github.com/orris-inc/helpdesk/internal/shared/constants"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []ticket.AssignmentNotice
}

func (n *recordingNotifier) NotifyAssigned(_ context.Context, notice ticket.AssignmentNotice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
	return nil
}

type testServer struct {
	t        *testing.T
	engine   *gin.Engine
	notifier *recordingNotifier
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	cfg := &config.Config{
		Server: sharedConfig.ServerConfig{AllowedOrigins: []string{"http://localhost:5173"}},
		Auth: sharedConfig.AuthConfig{
			Password: sharedConfig.PasswordConfig{BcryptCost: 4},
			JWT: sharedConfig.JWTConfig{
				Secret:           "router-test-secret",
				Issuer:           "helpdesk-test",
				AccessExpMinutes: 30,
			},
		},
	}

	notifier := &recordingNotifier{}
	router := NewRouter(Dependencies{
		DB:       db,
		Config:   cfg,
		Policy:   access.MustDefaultPolicy(),
		Notifier: notifier,
		Ping:     PingDatabase(db),
		Logger:   logger.NewDiscardLogger(),
	})
	router.SetupRoutes()

	return &testServer{t: t, engine: router.GetEngine(), notifier: notifier}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		var raw []byte
		switch b := body.(type) {
		case string:
			raw = []byte(b)
		default:
			var err error
			raw, err = json.Marshal(b)
			require.NoError(s.t, err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	}
	if token != "" {
		req.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) register(name, email, role string) uint {
	s.t.Helper()
	w := s.do(http.MethodPost, "/users", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "correct horse battery",
		"role":     role,
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	var body struct {
		ID uint `json:"id"`
	}
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.ID
}

func (s *testServer) login(email string) string {
	s.t.Helper()
	form := url.Values{"username": {email}, "password": {"correct horse battery"}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeForm)

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(s.t, "bearer", body.TokenType)
	return body.AccessToken
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type ticketBody struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	Status       string `json:"status"`
	Priority     string `json:"priority"`
	CreatorID    uint   `json:"creator_id"`
	TechnicianID *uint  `json:"technician_id"`
}

func TestTicketLifecycle(t *testing.T) {
	s := newTestServer(t)

	employeeID := s.register("Erin Employee", "erin@example.com", "employee")
	technicianID := s.register("Tom Technician", "tom@example.com", "technician")
	s.register("Ada Admin", "ada@example.com", "admin")

	employee := s.login("erin@example.com")
	technician := s.login("tom@example.com")
	admin := s.login("ada@example.com")

	// creator is forced to the caller
	w := s.do(http.MethodPost, "/tickets", employee, map[string]interface{}{
		"title":       "VPN broken",
		"description": "Cannot connect **since Monday**",
		"creator_id":  technicianID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[ticketBody](t, w)
	assert.Equal(t, employeeID, created.CreatorID)
	assert.Equal(t, "open", created.Status)
	assert.Equal(t, "medium", created.Priority)
	assert.Nil(t, created.TechnicianID)
	ticketPath := fmt.Sprintf("/tickets/%d", created.ID)

	// unassigned tickets are invisible to technicians
	w = s.do(http.MethodGet, "/tickets", technician, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]ticketBody](t, w))
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, ticketPath, technician, nil).Code)

	// admin assigns and the technician is notified
	w = s.do(http.MethodPatch, ticketPath, admin, fmt.Sprintf(`{"technician_id": %d}`, technicianID))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, s.notifier.notices, 1)
	assert.Equal(t, "tom@example.com", s.notifier.notices[0].TechnicianEmail)

	w = s.do(http.MethodGet, "/tickets", technician, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]ticketBody](t, w), 1)
	assert.Equal(t, "1", w.Header().Get(constants.HeaderXTotalCount))

	// a technician may not reassign, and nothing in the request is applied
	w = s.do(http.MethodPut, ticketPath, technician, fmt.Sprintf(`{"status":"resolved","technician_id": %d}`, employeeID))
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(http.MethodGet, ticketPath, technician, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "open", decode[ticketBody](t, w).Status)

	// the assignee may move the status
	w = s.do(http.MethodPut, ticketPath, technician, `{"status":"in_progress"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "in_progress", decode[ticketBody](t, w).Status)

	// comments follow read access
	w = s.do(http.MethodPost, ticketPath+"/comments", employee, map[string]string{"content": "Any news?"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = s.do(http.MethodPost, ticketPath+"/comments", technician, map[string]string{"content": "Working on it"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodGet, ticketPath+"/comments", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	comments := decode[[]struct {
		Content   string `json:"content"`
		CreatorID uint   `json:"creator_id"`
	}](t, w)
	require.Len(t, comments, 2)
	assert.Equal(t, "Any news?", comments[0].Content)
	assert.Equal(t, technicianID, comments[1].CreatorID)

	// stats are admin only
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/stats", technician, nil).Code)
	w = s.do(http.MethodGet, "/stats", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[struct {
		Total    int64            `json:"total_tickets"`
		ByStatus map[string]int64 `json:"tickets_by_status"`
	}](t, w)
	assert.Equal(t, int64(1), stats.Total)
	assert.Equal(t, int64(1), stats.ByStatus["in_progress"])
	assert.Equal(t, int64(0), stats.ByStatus["closed"])

	// delete is admin only and checked before existence
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodDelete, ticketPath, employee, nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodDelete, "/tickets/9999", employee, nil).Code)
	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, ticketPath, admin, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, ticketPath, admin, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, ticketPath+"/comments", admin, nil).Code)
}

func TestNotFoundBeforeForbidden(t *testing.T) {
	s := newTestServer(t)
	s.register("Erin Employee", "erin@example.com", "employee")
	employee := s.login("erin@example.com")

	w := s.do(http.MethodGet, "/tickets/424242", employee, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthentication(t *testing.T) {
	s := newTestServer(t)
	s.register("Erin Employee", "erin@example.com", "employee")

	t.Run("duplicate email conflicts", func(t *testing.T) {
		w := s.do(http.MethodPost, "/users", "", map[string]string{
			"name":     "Other",
			"email":    "erin@example.com",
			"password": "correct horse battery",
			"role":     "admin",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		form := url.Values{"username": {"erin@example.com"}, "password": {"nope"}}
		req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
		req.Header.Set(constants.HeaderContentType, constants.ContentTypeForm)
		w := httptest.NewRecorder()
		s.engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, constants.AuthSchemeBearer, w.Header().Get(constants.HeaderWWWAuthenticate))
	})

	t.Run("protected route without token", func(t *testing.T) {
		w := s.do(http.MethodGet, "/users/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("current user", func(t *testing.T) {
		w := s.do(http.MethodGet, "/users/me", s.login("erin@example.com"), nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode[map[string]interface{}](t, w)
		assert.Equal(t, "erin@example.com", body["email"])
		assert.Equal(t, "employee", body["role"])
		assert.NotContains(t, body, "password_hash")
	})
}

func TestPublicRoutes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "message")
	assert.NotEmpty(t, w.Header().Get(constants.HeaderXRequestID))

	w = s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
