package usecases

import (
	"context"
	stderrors "errors"

	"github.com/orris-inc/helpdesk/internal/domain/access"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/shared/constants"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

const msgTicketNotFound = "Ticket not found"

// visibleTicket loads a ticket and applies a per-ticket check. Absence is
// reported before denial.
func visibleTicket(
	ctx context.Context,
	repo ticket.TicketRepository,
	log logger.Interface,
	actor access.Subject,
	ticketID uint,
	check func(access.Subject, access.Target) (bool, error),
) (*ticket.Ticket, error) {
	if ticketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	t, err := repo.GetByID(ctx, ticketID)
	if err != nil {
		log.Errorw("failed to get ticket", "ticket_id", ticketID, "error", err)
		return nil, errors.NewInternalError("failed to get ticket")
	}
	if t == nil {
		return nil, errors.NewNotFoundError(msgTicketNotFound)
	}

	allowed, err := check(actor, t.AccessTarget())
	if err != nil {
		log.Errorw("failed to evaluate ticket access", "ticket_id", ticketID, "error", err)
		return nil, errors.NewInternalError("failed to evaluate permissions")
	}
	if !allowed {
		log.Warnw("ticket access denied",
			"ticket_id", ticketID,
			"user_id", actor.UserID,
			"role", actor.Role,
		)
		return nil, errors.NewForbiddenError(constants.ErrMsgForbidden)
	}

	return t, nil
}

// checkGate turns a subject-only decision into an error.
func checkGate(log logger.Interface, actor access.Subject, allowed bool, err error) error {
	if err != nil {
		log.Errorw("failed to evaluate permissions", "user_id", actor.UserID, "error", err)
		return errors.NewInternalError("failed to evaluate permissions")
	}
	if !allowed {
		log.Warnw("operation denied", "user_id", actor.UserID, "role", actor.Role)
		return errors.NewForbiddenError(constants.ErrMsgForbidden)
	}
	return nil
}

// forbiddenFromAccess maps update denials onto the forbidden error type.
func forbiddenFromAccess(err error) error {
	switch {
	case stderrors.Is(err, access.ErrReassignmentDenied):
		return errors.NewForbiddenError(constants.ErrMsgForbidden, err.Error())
	case stderrors.Is(err, access.ErrUpdateDenied):
		return errors.NewForbiddenError(constants.ErrMsgForbidden, err.Error())
	default:
		return errors.NewInternalError("failed to evaluate permissions")
	}
}
