package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/access"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/services/markdown"
)

type GetTicketQuery struct {
	Actor    access.Subject
	TicketID uint
}

type GetTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	engine     *access.Engine
	renderer   markdown.Renderer
	logger     logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.TicketRepository,
	engine *access.Engine,
	renderer markdown.Renderer,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo: ticketRepo,
		engine:     engine,
		renderer:   renderer,
		logger:     logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	t, err := visibleTicket(ctx, uc.ticketRepo, uc.logger, query.Actor, query.TicketID, uc.engine.CanReadTicket)
	if err != nil {
		return nil, err
	}
	return dto.ToTicketDTO(t, uc.renderer), nil
}
