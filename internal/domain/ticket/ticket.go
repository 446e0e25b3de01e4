package ticket

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/orris-inc/helpdesk/internal/domain/access"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/biztime"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 5000
)

// Ticket is a support request. The creator is fixed at creation; the
// technician is optional and nil means unassigned.
type Ticket struct {
	id           uint
	title        string
	description  string
	status       vo.TicketStatus
	priority     vo.Priority
	creatorID    uint
	technicianID *uint
	createdAt    time.Time
	updatedAt    time.Time
}

// NewTicket opens a ticket. Status is always open and priority falls back to
// the default when nil.
func NewTicket(title, description string, priority *vo.Priority, creatorID uint) (*Ticket, error) {
	if err := ValidateTitle(title); err != nil {
		return nil, err
	}
	if err := ValidateDescription(description); err != nil {
		return nil, err
	}
	if creatorID == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}

	p := vo.DefaultPriority
	if priority != nil {
		if !priority.IsValid() {
			return nil, fmt.Errorf("invalid priority: %s", *priority)
		}
		p = *priority
	}

	now := biztime.NowUTC()
	return &Ticket{
		title:       title,
		description: description,
		status:      vo.StatusOpen,
		priority:    p,
		creatorID:   creatorID,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructTicket rebuilds a ticket from persistence
func ReconstructTicket(
	id uint,
	title string,
	description string,
	status vo.TicketStatus,
	priority vo.Priority,
	creatorID uint,
	technicianID *uint,
	createdAt, updatedAt time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority: %s", priority)
	}
	if creatorID == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}

	return &Ticket{
		id:           id,
		title:        title,
		description:  description,
		status:       status,
		priority:     priority,
		creatorID:    creatorID,
		technicianID: technicianID,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return fmt.Errorf("title exceeds maximum length of %d characters", MaxTitleLength)
	}
	return nil
}

func ValidateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("description is required")
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return fmt.Errorf("description exceeds maximum length of %d characters", MaxDescriptionLength)
	}
	return nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) Title() string {
	return t.title
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) Priority() vo.Priority {
	return t.priority
}

func (t *Ticket) CreatorID() uint {
	return t.creatorID
}

// TechnicianID returns a copy of the assigned technician id, nil when unassigned
func (t *Ticket) TechnicianID() *uint {
	if t.technicianID == nil {
		return nil
	}
	id := *t.technicianID
	return &id
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

// AccessTarget exposes the ownership fields used by access decisions
func (t *Ticket) AccessTarget() access.Target {
	return access.Target{
		CreatorID:    t.creatorID,
		TechnicianID: t.TechnicianID(),
	}
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

func (t *Ticket) Rename(title string) error {
	if err := ValidateTitle(title); err != nil {
		return err
	}
	t.title = title
	t.touch()
	return nil
}

func (t *Ticket) Describe(description string) error {
	if err := ValidateDescription(description); err != nil {
		return err
	}
	t.description = description
	t.touch()
	return nil
}

// ChangeStatus accepts any valid status; the lifecycle has no transition graph.
func (t *Ticket) ChangeStatus(status vo.TicketStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid status: %s", status)
	}
	t.status = status
	t.touch()
	return nil
}

func (t *Ticket) ChangePriority(priority vo.Priority) error {
	if !priority.IsValid() {
		return fmt.Errorf("invalid priority: %s", priority)
	}
	t.priority = priority
	t.touch()
	return nil
}

// AssignTechnician sets or clears (nil) the assigned technician.
func (t *Ticket) AssignTechnician(technicianID *uint) error {
	if technicianID != nil && *technicianID == 0 {
		return fmt.Errorf("technician ID cannot be zero")
	}
	if technicianID == nil {
		t.technicianID = nil
	} else {
		id := *technicianID
		t.technicianID = &id
	}
	t.touch()
	return nil
}

func (t *Ticket) IsAssigned() bool {
	return t.technicianID != nil
}

func (t *Ticket) touch() {
	now := biztime.NowUTC()
	if !now.After(t.updatedAt) {
		now = t.updatedAt.Add(time.Microsecond)
	}
	t.updatedAt = now
}
