package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/domain/access"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type DeleteTicketCommand struct {
	Actor    access.Subject
	TicketID uint
}

type DeleteTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	engine     *access.Engine
	logger     logger.Interface
}

func NewDeleteTicketUseCase(
	ticketRepo ticket.TicketRepository,
	engine *access.Engine,
	logger logger.Interface,
) *DeleteTicketUseCase {
	return &DeleteTicketUseCase{
		ticketRepo: ticketRepo,
		engine:     engine,
		logger:     logger,
	}
}

// Execute checks the role before existence, so non-admins get 403 even for
// missing tickets.
func (uc *DeleteTicketUseCase) Execute(ctx context.Context, cmd DeleteTicketCommand) error {
	uc.logger.Infow("executing delete ticket use case", "ticket_id", cmd.TicketID, "user_id", cmd.Actor.UserID)

	allowed, err := uc.engine.CanDeleteTicket(cmd.Actor)
	if err := checkGate(uc.logger, cmd.Actor, allowed, err); err != nil {
		return err
	}

	if cmd.TicketID == 0 {
		return errors.NewValidationError("ticket ID is required")
	}

	existing, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to get ticket", "ticket_id", cmd.TicketID, "error", err)
		return errors.NewInternalError("failed to get ticket")
	}
	if existing == nil {
		return errors.NewNotFoundError(msgTicketNotFound)
	}

	if err := uc.ticketRepo.Delete(ctx, cmd.TicketID); err != nil {
		uc.logger.Errorw("failed to delete ticket", "ticket_id", cmd.TicketID, "error", err)
		return errors.NewInternalError("failed to delete ticket")
	}

	uc.logger.Infow("ticket deleted successfully", "ticket_id", cmd.TicketID)
	return nil
}
