package usecases

import (
	"context"
	"strings"

	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/access"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/services/markdown"
)

// ListTicketsQuery filters the actor's visible tickets. A zero PageSize
// returns every match.
type ListTicketsQuery struct {
	Actor     access.Subject
	Status    string
	Priority  string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

type ListTicketsResult struct {
	Tickets []*dto.TicketDTO
	Total   int64
}

type ListTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	engine     *access.Engine
	renderer   markdown.Renderer
	logger     logger.Interface
}

func NewListTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	engine *access.Engine,
	renderer markdown.Renderer,
	logger logger.Interface,
) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		engine:     engine,
		renderer:   renderer,
		logger:     logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error) {
	visibility, err := uc.engine.TicketVisibility(query.Actor)
	if err != nil {
		uc.logger.Errorw("failed to compute ticket visibility", "user_id", query.Actor.UserID, "error", err)
		return nil, errors.NewInternalError("failed to evaluate permissions")
	}

	filter := ticket.TicketFilter{
		Visibility: visibility,
		Page:       query.Page,
		PageSize:   query.PageSize,
		SortBy:     query.SortBy,
		SortOrder:  query.SortOrder,
	}

	if s := strings.TrimSpace(query.Status); s != "" {
		status, err := vo.NewTicketStatus(s)
		if err != nil {
			return nil, errors.NewValidationError("invalid status filter", err.Error())
		}
		filter.Status = &status
	}
	if p := strings.TrimSpace(query.Priority); p != "" {
		priority, err := vo.NewPriority(p)
		if err != nil {
			return nil, errors.NewValidationError("invalid priority filter", err.Error())
		}
		filter.Priority = &priority
	}

	tickets, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, errors.NewInternalError("failed to list tickets")
	}

	uc.logger.Debugw("tickets listed",
		"user_id", query.Actor.UserID,
		"visibility", visibility.Kind.String(),
		"count", len(tickets),
		"total", total,
	)

	return &ListTicketsResult{
		Tickets: dto.ToTicketDTOs(tickets, uc.renderer),
		Total:   total,
	}, nil
}
