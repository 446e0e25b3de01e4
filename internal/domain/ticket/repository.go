package ticket

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/domain/access"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
)

// TicketRepository persists tickets. GetByID returns (nil, nil) when the
// ticket does not exist.
type TicketRepository interface {
	Create(ctx context.Context, ticket *Ticket) error
	Update(ctx context.Context, ticket *Ticket) error
	// Delete removes the ticket together with its comments
	Delete(ctx context.Context, ticketID uint) error
	GetByID(ctx context.Context, ticketID uint) (*Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]*Ticket, int64, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (map[vo.TicketStatus]int64, error)
	CountByPriority(ctx context.Context) (map[vo.Priority]int64, error)
}

// TicketFilter selects tickets within a visibility predicate. A zero
// PageSize returns every matching ticket.
type TicketFilter struct {
	Visibility access.Visibility
	Status     *vo.TicketStatus
	Priority   *vo.Priority
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}

type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	// ListByTicketID returns comments oldest first
	ListByTicketID(ctx context.Context, ticketID uint) ([]*Comment, error)
}
