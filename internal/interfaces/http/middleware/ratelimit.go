package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/infrastructure/ratelimit"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

type RateLimiter struct {
	limiter ratelimit.Limiter
	limits  ratelimit.Limits
	logger  logger.Interface
}

// NewRateLimiter wraps limiter for use on routes. A nil limiter produces a
// middleware that lets every request through.
func NewRateLimiter(limiter ratelimit.Limiter, limits ratelimit.Limits, log logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		limits:  limits,
		logger:  log,
	}
}

// Limit counts requests per client IP under scope. Limiter failures let the
// request through.
func (r *RateLimiter) Limit(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if r == nil || r.limiter == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("%s:%s", scope, c.ClientIP())
		allowed, err := r.limiter.Allow(c.Request.Context(), key, r.limits)
		if err != nil {
			r.logger.Warnw("rate limiter unavailable, allowing request",
				"scope", scope,
				"client_ip", c.ClientIP(),
				"error", err,
			)
			c.Next()
			return
		}

		if !allowed {
			r.logger.Infow("rate limit exceeded",
				"scope", scope,
				"client_ip", c.ClientIP(),
			)
			utils.ErrorResponseWithError(c, errors.NewRateLimitedError("Too many requests, please try again later"))
			c.Abort()
			return
		}

		c.Next()
	}
}
