package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/application/user/dto"
	"github.com/orris-inc/helpdesk/internal/application/user/usecases"
	"github.com/orris-inc/helpdesk/internal/domain/access"
	vo "github.com/orris-inc/helpdesk/internal/domain/user/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/constants"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

type AuthMiddleware struct {
	authenticate usecases.AuthenticateExecutor
	logger       logger.Interface
}

func NewAuthMiddleware(authenticate usecases.AuthenticateExecutor, log logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		authenticate: authenticate,
		logger:       log,
	}
}

// RequireAuth resolves the bearer token to a stored user and stores it on the
// context. Any failure ends the request with 401.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader(constants.HeaderAuthorization))

		current, err := m.authenticate.Execute(c.Request.Context(), token)
		if err != nil {
			if errors.ShouldLogAuthError(err) {
				m.logger.Warnw("authentication failed",
					"path", c.Request.URL.Path,
					"client_ip", c.ClientIP(),
					"security_event", errors.IsSecurityEvent(err),
					"error", err,
				)
			}
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, current.ID)
		c.Set(constants.ContextKeyUserEmail, current.Email)
		c.Set(constants.ContextKeyUserRole, current.Role)
		c.Set(constants.ContextKeyUser, current)
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, constants.AuthSchemeBearer) {
		return ""
	}
	return strings.TrimSpace(token)
}

// CurrentUser returns the user stored by RequireAuth.
func CurrentUser(c *gin.Context) (*dto.UserDTO, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	current, ok := value.(*dto.UserDTO)
	return current, ok && current != nil
}

// CurrentSubject builds the access subject for the authenticated user.
func CurrentSubject(c *gin.Context) (access.Subject, bool) {
	current, ok := CurrentUser(c)
	if !ok {
		return access.Subject{}, false
	}
	return access.Subject{UserID: current.ID, Role: vo.Role(current.Role)}, true
}
