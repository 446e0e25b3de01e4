package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

const healthCheckTimeout = 2 * time.Second

// PingFunc checks a dependency and returns an error when it is unreachable.
type PingFunc func(ctx context.Context) error

type HealthHandler struct {
	ping   PingFunc
	logger logger.Interface
}

func NewHealthHandler(ping PingFunc, log logger.Interface) *HealthHandler {
	return &HealthHandler{
		ping:   ping,
		logger: log,
	}
}

// Root handles GET /
// @Summary Greeting
// @Tags default
// @Produce json
// @Success 200 {object} utils.MessageResponse
// @Router / [get]
func (h *HealthHandler) Root(c *gin.Context) {
	utils.SuccessResponse(c, utils.MessageResponse{Message: "Hello from the Ticketing System API!"})
}

// Health handles GET /health
// @Summary Health check
// @Tags default
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} utils.ErrorBody
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		if err := h.ping(ctx); err != nil {
			h.logger.Errorw("health check failed", "error", err)
			utils.ErrorResponse(c, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}

	utils.SuccessResponse(c, gin.H{
		"status":   "ok",
		"database": "ok",
	})
}
