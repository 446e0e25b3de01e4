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

// CreateTicketCommand has no creator field; the creator is always the actor.
type CreateTicketCommand struct {
	Actor       access.Subject
	Title       string
	Description string
	Priority    *string
}

type CreateTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	engine     *access.Engine
	renderer   markdown.Renderer
	logger     logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	engine *access.Engine,
	renderer markdown.Renderer,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo: ticketRepo,
		engine:     engine,
		renderer:   renderer,
		logger:     logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing create ticket use case", "creator_id", cmd.Actor.UserID)

	allowed, err := uc.engine.CanCreateTicket(cmd.Actor)
	if err := checkGate(uc.logger, cmd.Actor, allowed, err); err != nil {
		return nil, err
	}

	var priority *vo.Priority
	if cmd.Priority != nil {
		p, err := vo.NewPriority(strings.TrimSpace(*cmd.Priority))
		if err != nil {
			return nil, errors.NewValidationError("invalid priority", err.Error())
		}
		priority = &p
	}

	t, err := ticket.NewTicket(cmd.Title, cmd.Description, priority, cmd.Actor.UserID)
	if err != nil {
		uc.logger.Warnw("invalid create ticket command", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.ticketRepo.Create(ctx, t); err != nil {
		uc.logger.Errorw("failed to save ticket", "error", err)
		return nil, errors.NewInternalError("failed to save ticket")
	}

	uc.logger.Infow("ticket created successfully",
		"ticket_id", t.ID(),
		"creator_id", t.CreatorID(),
		"priority", t.Priority(),
	)

	return dto.ToTicketDTO(t, uc.renderer), nil
}
