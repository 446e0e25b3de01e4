package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/application/user/usecases"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

type RegisterUserRequest struct {
	Name     string `json:"name" validate:"required,notblank,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,notblank"`
}

type UserHandler struct {
	registerUC       usecases.RegisterUserExecutor
	getCurrentUserUC usecases.GetCurrentUserExecutor
	logger           logger.Interface
}

func NewUserHandler(
	registerUC usecases.RegisterUserExecutor,
	getCurrentUserUC usecases.GetCurrentUserExecutor,
	log logger.Interface,
) *UserHandler {
	return &UserHandler{
		registerUC:       registerUC,
		getCurrentUserUC: getCurrentUserUC,
		logger:           log,
	}
}

// Register handles POST /users
// @Summary Register a user
// @Description Create an account with a role of employee, technician or admin
// @Tags users
// @Accept json
// @Produce json
// @Param user body RegisterUserRequest true "User data"
// @Success 201 {object} dto.UserDTO
// @Failure 400 {object} utils.ErrorBody
// @Failure 409 {object} utils.ErrorBody
// @Failure 429 {object} utils.ErrorBody
// @Router /users [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for register", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.registerUC.Execute(c.Request.Context(), usecases.RegisterUserCommand{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}

// GetCurrentUser handles GET /users/me
// @Summary Current user
// @Tags users
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.UserDTO
// @Failure 401 {object} utils.ErrorBody
// @Router /users/me [get]
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewMissingSubjectError())
		return
	}

	result, err := h.getCurrentUserUC.Execute(c.Request.Context(), usecases.GetCurrentUserQuery{UserID: current.ID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}
