package usecases

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/access"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/domain/user"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/optional"
	"github.com/orris-inc/helpdesk/internal/shared/services/markdown"
)

// UpdateTicketCommand is a partial update. Nil pointers are absent fields;
// TechnicianID.Set with a nil Value unassigns.
type UpdateTicketCommand struct {
	Actor        access.Subject
	ActorEmail   string
	TicketID     uint
	Title        *string
	Description  *string
	Status       *string
	Priority     *string
	TechnicianID optional.Uint
}

func (c UpdateTicketCommand) fields() access.UpdateFields {
	return access.UpdateFields{
		Reassignment: c.TechnicianID.Set,
		Other:        c.Title != nil || c.Description != nil || c.Status != nil || c.Priority != nil,
	}
}

type UpdateTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	userRepo   user.Repository
	txManager  TransactionRunner
	engine     *access.Engine
	notifier   ticket.AssignmentNotifier
	renderer   markdown.Renderer
	logger     logger.Interface
}

func NewUpdateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	userRepo user.Repository,
	txManager TransactionRunner,
	engine *access.Engine,
	notifier ticket.AssignmentNotifier,
	renderer markdown.Renderer,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		txManager:  txManager,
		engine:     engine,
		notifier:   notifier,
		renderer:   renderer,
		logger:     logger,
	}
}

// parsedUpdate holds validated enum values.
type parsedUpdate struct {
	status   *vo.TicketStatus
	priority *vo.Priority
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing update ticket use case", "ticket_id", cmd.TicketID, "updated_by", cmd.Actor.UserID)

	parsed, err := uc.validateCommand(cmd)
	if err != nil {
		uc.logger.Warnw("invalid update ticket command", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	fields := cmd.fields()
	if !fields.Reassignment && !fields.Other {
		// nothing to change; the caller still has to be able to see the ticket
		t, err := visibleTicket(ctx, uc.ticketRepo, uc.logger, cmd.Actor, cmd.TicketID, uc.engine.CanReadTicket)
		if err != nil {
			return nil, err
		}
		return dto.ToTicketDTO(t, uc.renderer), nil
	}

	existing, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to get ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to get ticket")
	}
	if existing == nil {
		return nil, errors.NewNotFoundError(msgTicketNotFound)
	}

	if err := uc.engine.AuthorizeUpdate(cmd.Actor, existing.AccessTarget(), fields); err != nil {
		uc.logger.Warnw("user not authorized to update ticket",
			"ticket_id", cmd.TicketID,
			"user_id", cmd.Actor.UserID,
			"role", cmd.Actor.Role,
			"reason", err.Error(),
		)
		return nil, forbiddenFromAccess(err)
	}

	var technician *user.User
	if fields.Reassignment && cmd.TechnicianID.Value != nil {
		technician, err = uc.userRepo.GetByID(ctx, *cmd.TechnicianID.Value)
		if err != nil {
			uc.logger.Errorw("failed to get technician", "technician_id", *cmd.TechnicianID.Value, "error", err)
			return nil, errors.NewInternalError("failed to get technician")
		}
		if technician == nil {
			return nil, errors.NewValidationError("technician not found", "technician_id does not reference an existing user")
		}
	}

	previousTechnician := existing.TechnicianID()

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := applyUpdate(existing, cmd, parsed); err != nil {
			return err
		}
		return uc.ticketRepo.Update(txCtx, existing)
	})
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to update ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to update ticket")
	}

	uc.logger.Infow("ticket updated successfully",
		"ticket_id", existing.ID(),
		"status", existing.Status(),
		"priority", existing.Priority(),
	)

	if technician != nil && !sameTechnician(previousTechnician, existing.TechnicianID()) {
		uc.notifyAssignment(ctx, existing, technician, cmd.ActorEmail)
	}

	return dto.ToTicketDTO(existing, uc.renderer), nil
}

func (uc *UpdateTicketUseCase) validateCommand(cmd UpdateTicketCommand) (parsedUpdate, error) {
	var parsed parsedUpdate

	if cmd.TicketID == 0 {
		return parsed, errors.NewValidationError("ticket ID is required")
	}
	if cmd.Title != nil {
		if err := ticket.ValidateTitle(*cmd.Title); err != nil {
			return parsed, errors.NewValidationError(err.Error())
		}
	}
	if cmd.Description != nil {
		if err := ticket.ValidateDescription(*cmd.Description); err != nil {
			return parsed, errors.NewValidationError(err.Error())
		}
	}
	if cmd.Status != nil {
		s, err := vo.NewTicketStatus(strings.TrimSpace(*cmd.Status))
		if err != nil {
			return parsed, errors.NewValidationError("invalid status", err.Error())
		}
		parsed.status = &s
	}
	if cmd.Priority != nil {
		p, err := vo.NewPriority(strings.TrimSpace(*cmd.Priority))
		if err != nil {
			return parsed, errors.NewValidationError("invalid priority", err.Error())
		}
		parsed.priority = &p
	}
	if cmd.TechnicianID.Value != nil && *cmd.TechnicianID.Value == 0 {
		return parsed, errors.NewValidationError("technician_id must be a positive integer")
	}

	return parsed, nil
}

func applyUpdate(t *ticket.Ticket, cmd UpdateTicketCommand, parsed parsedUpdate) error {
	var errs []error
	if cmd.Title != nil {
		errs = append(errs, t.Rename(*cmd.Title))
	}
	if cmd.Description != nil {
		errs = append(errs, t.Describe(*cmd.Description))
	}
	if parsed.status != nil {
		errs = append(errs, t.ChangeStatus(*parsed.status))
	}
	if parsed.priority != nil {
		errs = append(errs, t.ChangePriority(*parsed.priority))
	}
	if cmd.TechnicianID.Set {
		errs = append(errs, t.AssignTechnician(cmd.TechnicianID.Value))
	}
	if err := stderrors.Join(errs...); err != nil {
		return errors.NewValidationError(err.Error())
	}
	return nil
}

func sameTechnician(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// notifyAssignment runs after commit; failures are logged only.
func (uc *UpdateTicketUseCase) notifyAssignment(ctx context.Context, t *ticket.Ticket, technician *user.User, assignedBy string) {
	if uc.notifier == nil {
		return
	}

	notice := ticket.AssignmentNotice{
		TicketID:        t.ID(),
		Title:           t.Title(),
		Priority:        t.Priority().String(),
		Status:          t.Status().String(),
		TechnicianName:  technician.Name().String(),
		TechnicianEmail: technician.Email().String(),
		AssignedBy:      assignedBy,
	}

	if err := uc.notifier.NotifyAssigned(ctx, notice); err != nil {
		uc.logger.Warnw("failed to send assignment notification",
			"ticket_id", t.ID(),
			"technician_id", technician.ID(),
			"error", err,
		)
	}
}
