package ticket

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/application/ticket/usecases"
	"github.com/orris-inc/helpdesk/internal/domain/access"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

// Executors groups the use cases served by TicketHandler.
type Executors struct {
	Create       usecases.CreateTicketExecutor
	List         usecases.ListTicketsExecutor
	Get          usecases.GetTicketExecutor
	Update       usecases.UpdateTicketExecutor
	Delete       usecases.DeleteTicketExecutor
	AddComment   usecases.AddCommentExecutor
	ListComments usecases.ListCommentsExecutor
	Stats        usecases.GetTicketStatsExecutor
}

type TicketHandler struct {
	createTicketUC usecases.CreateTicketExecutor
	listTicketsUC  usecases.ListTicketsExecutor
	getTicketUC    usecases.GetTicketExecutor
	updateTicketUC usecases.UpdateTicketExecutor
	deleteTicketUC usecases.DeleteTicketExecutor
	addCommentUC   usecases.AddCommentExecutor
	listCommentsUC usecases.ListCommentsExecutor
	statsUC        usecases.GetTicketStatsExecutor
	logger         logger.Interface
}

func NewTicketHandler(executors Executors, log logger.Interface) *TicketHandler {
	return &TicketHandler{
		createTicketUC: executors.Create,
		listTicketsUC:  executors.List,
		getTicketUC:    executors.Get,
		updateTicketUC: executors.Update,
		deleteTicketUC: executors.Delete,
		addCommentUC:   executors.AddComment,
		listCommentsUC: executors.ListComments,
		statsUC:        executors.Stats,
		logger:         log,
	}
}

// CreateTicket handles POST /tickets
// @Summary Create a ticket
// @Description The creator is always the authenticated user; status starts as open.
// @Tags tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param ticket body CreateTicketRequest true "Ticket data"
// @Success 201 {object} dto.TicketDTO
// @Failure 400 {object} utils.ErrorBody
// @Failure 401 {object} utils.ErrorBody
// @Router /tickets [post]
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	actor, ok := subject(c)
	if !ok {
		return
	}

	var req CreateTicketRequest
	if !h.bind(c, &req, "create ticket") {
		return
	}

	result, err := h.createTicketUC.Execute(c.Request.Context(), req.ToCommand(actor))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}

// ListTickets handles GET /tickets
// @Summary List visible tickets
// @Description Admins see every ticket, technicians their assignments and employees their own tickets.
// @Tags tickets
// @Produce json
// @Security Bearer
// @Param status query string false "Status filter" Enums(open, in_progress, resolved, closed)
// @Param priority query string false "Priority filter" Enums(low, medium, high, critical)
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param sort_by query string false "Sort column" Enums(id, title, created_at, updated_at, priority, status)
// @Param sort_order query string false "Sort direction" Enums(asc, desc)
// @Success 200 {array} dto.TicketDTO
// @Header 200 {integer} X-Total-Count "Number of matching tickets"
// @Failure 400 {object} utils.ErrorBody
// @Failure 401 {object} utils.ErrorBody
// @Router /tickets [get]
func (h *TicketHandler) ListTickets(c *gin.Context) {
	actor, ok := subject(c)
	if !ok {
		return
	}

	pagination := utils.ParseOptionalPagination(c)
	result, err := h.listTicketsUC.Execute(c.Request.Context(), usecases.ListTicketsQuery{
		Actor:     actor,
		Status:    c.Query("status"),
		Priority:  c.Query("priority"),
		Page:      pagination.Page,
		PageSize:  pagination.PageSize,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.Total)
}

// GetTicket handles GET /tickets/:id
// @Summary Get a ticket
// @Tags tickets
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Success 200 {object} dto.TicketDTO
// @Failure 403 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Router /tickets/{id} [get]
func (h *TicketHandler) GetTicket(c *gin.Context) {
	actor, ok := subject(c)
	if !ok {
		return
	}

	ticketID, err := utils.ParseIDParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getTicketUC.Execute(c.Request.Context(), usecases.GetTicketQuery{
		Actor:    actor,
		TicketID: ticketID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// UpdateTicket handles PUT and PATCH /tickets/:id
// @Summary Update a ticket
// @Description Partial update. Only admins may change technician_id; a forbidden field rejects the whole request.
// @Tags tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param ticket body UpdateTicketRequest true "Fields to change"
// @Success 200 {object} dto.TicketDTO
// @Failure 400 {object} utils.ErrorBody
// @Failure 403 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Router /tickets/{id} [put]
// @Router /tickets/{id} [patch]
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	actor, ok := subject(c)
	if !ok {
		return
	}

	ticketID, err := utils.ParseIDParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateTicketRequest
	if !h.bind(c, &req, "update ticket") {
		return
	}

	current, _ := middleware.CurrentUser(c)
	result, err := h.updateTicketUC.Execute(c.Request.Context(), req.ToCommand(actor, current.Email, ticketID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// DeleteTicket handles DELETE /tickets/:id
// @Summary Delete a ticket
// @Description Admin only. Comments are removed with the ticket.
// @Tags tickets
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Success 204
// @Failure 403 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Router /tickets/{id} [delete]
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	actor, ok := subject(c)
	if !ok {
		return
	}

	ticketID, err := utils.ParseIDParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteTicketUC.Execute(c.Request.Context(), usecases.DeleteTicketCommand{
		Actor:    actor,
		TicketID: ticketID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// AddComment handles POST /tickets/:id/comments
// @Summary Comment on a ticket
// @Tags comments
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param comment body AddCommentRequest true "Comment"
// @Success 201 {object} dto.CommentDTO
// @Failure 400 {object} utils.ErrorBody
// @Failure 403 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Router /tickets/{id}/comments [post]
func (h *TicketHandler) AddComment(c *gin.Context) {
	actor, ok := subject(c)
	if !ok {
		return
	}

	ticketID, err := utils.ParseIDParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AddCommentRequest
	if !h.bind(c, &req, "add comment") {
		return
	}

	result, err := h.addCommentUC.Execute(c.Request.Context(), usecases.AddCommentCommand{
		Actor:    actor,
		TicketID: ticketID,
		Content:  req.Content,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}

// ListComments handles GET /tickets/:id/comments
// @Summary List comments of a ticket
// @Tags comments
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Success 200 {array} dto.CommentDTO
// @Failure 403 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Router /tickets/{id}/comments [get]
func (h *TicketHandler) ListComments(c *gin.Context) {
	actor, ok := subject(c)
	if !ok {
		return
	}

	ticketID, err := utils.ParseIDParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listCommentsUC.Execute(c.Request.Context(), usecases.ListCommentsQuery{
		Actor:    actor,
		TicketID: ticketID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result, int64(len(result)))
}

// GetStats handles GET /stats
// @Summary Ticket statistics
// @Description Admin only. Every status and priority is present, zero when unused.
// @Tags stats
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.TicketStatsDTO
// @Failure 403 {object} utils.ErrorBody
// @Router /stats [get]
func (h *TicketHandler) GetStats(c *gin.Context) {
	actor, ok := subject(c)
	if !ok {
		return
	}

	result, err := h.statsUC.Execute(c.Request.Context(), usecases.GetTicketStatsQuery{Actor: actor})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

func (h *TicketHandler) bind(c *gin.Context, req interface{}, operation string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.Warnw("invalid request body", "operation", operation, "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return false
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return false
	}
	return true
}

func subject(c *gin.Context) (access.Subject, bool) {
	actor, ok := middleware.CurrentSubject(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewMissingSubjectError())
		return access.Subject{}, false
	}
	return actor, true
}
