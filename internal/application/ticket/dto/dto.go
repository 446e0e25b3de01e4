package dto

import (
	"time"

	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/services/markdown"
)

type TicketDTO struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DescriptionHTML string    `json:"description_html,omitempty"`
	Status          string    `json:"status"`
	Priority        string    `json:"priority"`
	CreatorID       uint      `json:"creator_id"`
	TechnicianID    *uint     `json:"technician_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CommentDTO struct {
	ID        uint      `json:"id"`
	TicketID  uint      `json:"ticket_id"`
	CreatorID uint      `json:"creator_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// TicketStatsDTO always carries every status and priority key.
type TicketStatsDTO struct {
	TotalTickets      int64            `json:"total_tickets"`
	TicketsByStatus   map[string]int64 `json:"tickets_by_status"`
	TicketsByPriority map[string]int64 `json:"tickets_by_priority"`
}

// ToTicketDTO converts a ticket. A nil renderer leaves description_html empty.
func ToTicketDTO(t *ticket.Ticket, renderer markdown.Renderer) *TicketDTO {
	if t == nil {
		return nil
	}

	out := &TicketDTO{
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
	if renderer != nil {
		out.DescriptionHTML = renderer.Render(t.Description())
	}
	return out
}

func ToTicketDTOs(tickets []*ticket.Ticket, renderer markdown.Renderer) []*TicketDTO {
	out := make([]*TicketDTO, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, ToTicketDTO(t, renderer))
	}
	return out
}

func ToCommentDTO(c *ticket.Comment) *CommentDTO {
	if c == nil {
		return nil
	}
	return &CommentDTO{
		ID:        c.ID(),
		TicketID:  c.TicketID(),
		CreatorID: c.CreatorID(),
		Content:   c.Content(),
		CreatedAt: c.CreatedAt(),
	}
}

func ToCommentDTOs(comments []*ticket.Comment) []*CommentDTO {
	out := make([]*CommentDTO, 0, len(comments))
	for _, c := range comments {
		out = append(out, ToCommentDTO(c))
	}
	return out
}

// NewTicketStatsDTO zero-fills every known status and priority before
// applying the counts.
func NewTicketStatsDTO(total int64, byStatus map[vo.TicketStatus]int64, byPriority map[vo.Priority]int64) *TicketStatsDTO {
	stats := &TicketStatsDTO{
		TotalTickets:      total,
		TicketsByStatus:   make(map[string]int64, len(vo.AllStatuses())),
		TicketsByPriority: make(map[string]int64, len(vo.AllPriorities())),
	}
	for _, s := range vo.AllStatuses() {
		stats.TicketsByStatus[s.String()] = byStatus[s]
	}
	for _, p := range vo.AllPriorities() {
		stats.TicketsByPriority[p.String()] = byPriority[p]
	}
	return stats
}
