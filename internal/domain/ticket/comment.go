package ticket

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/orris-inc/helpdesk/internal/shared/biztime"
)

const MaxCommentLength = 5000

// Comment belongs to exactly one ticket and is never edited.
type Comment struct {
	id        uint
	ticketID  uint
	creatorID uint
	content   string
	createdAt time.Time
}

func NewComment(ticketID, creatorID uint, content string) (*Comment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if creatorID == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("content cannot be empty")
	}
	if utf8.RuneCountInString(content) > MaxCommentLength {
		return nil, fmt.Errorf("content exceeds maximum length of %d characters", MaxCommentLength)
	}

	return &Comment{
		ticketID:  ticketID,
		creatorID: creatorID,
		content:   content,
		createdAt: biztime.NowUTC(),
	}, nil
}

func ReconstructComment(id, ticketID, creatorID uint, content string, createdAt time.Time) (*Comment, error) {
	if id == 0 {
		return nil, fmt.Errorf("comment ID cannot be zero")
	}
	if ticketID == 0 || creatorID == 0 {
		return nil, fmt.Errorf("ticket ID and creator ID are required")
	}

	return &Comment{
		id:        id,
		ticketID:  ticketID,
		creatorID: creatorID,
		content:   content,
		createdAt: createdAt,
	}, nil
}

func (c *Comment) ID() uint {
	return c.id
}

func (c *Comment) TicketID() uint {
	return c.ticketID
}

func (c *Comment) CreatorID() uint {
	return c.creatorID
}

func (c *Comment) Content() string {
	return c.content
}

func (c *Comment) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Comment) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("comment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("comment ID cannot be zero")
	}
	c.id = id
	return nil
}
