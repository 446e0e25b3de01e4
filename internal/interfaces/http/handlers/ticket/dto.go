package ticket

import (
	"github.com/orris-inc/helpdesk/internal/application/ticket/usecases"
	"github.com/orris-inc/helpdesk/internal/domain/access"
	"github.com/orris-inc/helpdesk/internal/shared/optional"
)

type CreateTicketRequest struct {
	Title       string  `json:"title" validate:"required,notblank,max=200"`
	Description string  `json:"description" validate:"required,notblank"`
	Priority    *string `json:"priority,omitempty"`
}

func (r *CreateTicketRequest) ToCommand(actor access.Subject) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		Actor:       actor,
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
	}
}

// UpdateTicketRequest carries a partial update. Absent fields are left
// untouched; technician_id distinguishes absent from an explicit null.
type UpdateTicketRequest struct {
	Title        *string       `json:"title,omitempty" validate:"omitempty,notblank,max=200"`
	Description  *string       `json:"description,omitempty" validate:"omitempty,notblank"`
	Status       *string       `json:"status,omitempty"`
	Priority     *string       `json:"priority,omitempty"`
	TechnicianID optional.Uint `json:"technician_id" swaggertype:"integer"`
}

func (r *UpdateTicketRequest) ToCommand(actor access.Subject, actorEmail string, ticketID uint) usecases.UpdateTicketCommand {
	return usecases.UpdateTicketCommand{
		Actor:        actor,
		ActorEmail:   actorEmail,
		TicketID:     ticketID,
		Title:        r.Title,
		Description:  r.Description,
		Status:       r.Status,
		Priority:     r.Priority,
		TechnicianID: r.TechnicianID,
	}
}

type AddCommentRequest struct {
	Content string `json:"content" validate:"required,notblank,max=10000"`
}
