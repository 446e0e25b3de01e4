package mappers

import (
	"fmt"

	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/helpdesk/internal/shared/biztime"
)

// TicketMapper handles the conversion between Ticket domain entities and persistence models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
	CommentToModel(c *ticket.Comment) *models.CommentModel
	CommentToDomain(model *models.CommentModel) (*ticket.Comment, error)
}

type ticketMapper struct{}

func NewTicketMapper() TicketMapper {
	return &ticketMapper{}
}

func (m *ticketMapper) ToModel(t *ticket.Ticket) *models.TicketModel {
	return &models.TicketModel{
		ID:           t.ID(),
		Title:        t.Title(),
		Description:  t.Description(),
		Status:       t.Status().String(),
		Priority:     t.Priority().String(),
		CreatorID:    t.CreatorID(),
		TechnicianID: t.TechnicianID(),
		CreatedAt:    t.CreatedAt(),
		UpdatedAt:    t.UpdatedAt(),
	}
}

// ToDomain rejects rows whose enum columns hold unknown values.
func (m *ticketMapper) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	status, err := vo.NewTicketStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("invalid stored status for ticket %d: %w", model.ID, err)
	}

	priority, err := vo.NewPriority(model.Priority)
	if err != nil {
		return nil, fmt.Errorf("invalid stored priority for ticket %d: %w", model.ID, err)
	}

	return ticket.ReconstructTicket(
		model.ID,
		model.Title,
		model.Description,
		status,
		priority,
		model.CreatorID,
		model.TechnicianID,
		biztime.ToUTC(model.CreatedAt),
		biztime.ToUTC(model.UpdatedAt),
	)
}

func (m *ticketMapper) CommentToModel(c *ticket.Comment) *models.CommentModel {
	return &models.CommentModel{
		ID:        c.ID(),
		TicketID:  c.TicketID(),
		CreatorID: c.CreatorID(),
		Content:   c.Content(),
		CreatedAt: c.CreatedAt(),
	}
}

func (m *ticketMapper) CommentToDomain(model *models.CommentModel) (*ticket.Comment, error) {
	return ticket.ReconstructComment(
		model.ID,
		model.TicketID,
		model.CreatorID,
		model.Content,
		biztime.ToUTC(model.CreatedAt),
	)
}
