package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/application/user/usecases"
	"github.com/orris-inc/helpdesk/internal/shared/constants"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

// TokenRequest is the JSON form of the password grant. Username is accepted
// as an alias for email.
type TokenRequest struct {
	Email    string `json:"email" form:"email"`
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (r *TokenRequest) login() string {
	if r.Email != "" {
		return r.Email
	}
	return r.Username
}

type AuthHandler struct {
	loginUC usecases.LoginExecutor
	logger  logger.Interface
}

func NewAuthHandler(loginUC usecases.LoginExecutor, log logger.Interface) *AuthHandler {
	return &AuthHandler{
		loginUC: loginUC,
		logger:  log,
	}
}

// Token handles POST /token
// @Summary Issue an access token
// @Description Password grant. Accepts form fields username and password, or a JSON body with email and password.
// @Tags authentication
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param username formData string false "Email address"
// @Param password formData string false "Password"
// @Success 200 {object} dto.TokenDTO
// @Failure 400 {object} utils.ErrorBody
// @Failure 401 {object} utils.ErrorBody
// @Failure 429 {object} utils.ErrorBody
// @Router /token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warnw("invalid token request", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}

	login := strings.TrimSpace(req.login())
	if login == "" || req.Password == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError(
			constants.ErrMsgValidationFailed, "username and password are required"))
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), usecases.LoginCommand{
		Email:    login,
		Password: req.Password,
	})
	if err != nil {
		if errors.ShouldLogAuthError(err) {
			h.logger.Warnw("login failed", "client_ip", c.ClientIP(), "error", err)
		}
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}
