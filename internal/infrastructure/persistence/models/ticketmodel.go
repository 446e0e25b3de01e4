package models

import (
	"time"

	"github.com/orris-inc/helpdesk/internal/shared/constants"
)

// TicketModel maps the tickets table. Foreign keys and the comment cascade
// are declared by the SQL migrations; the repository also removes comments
// explicitly so AutoMigrate schemas behave the same.
type TicketModel struct {
	ID           uint      `gorm:"primaryKey"`
	Title        string    `gorm:"size:200;not null"`
	Description  string    `gorm:"type:text;not null"`
	Status       string    `gorm:"size:20;not null;default:open;index"`
	Priority     string    `gorm:"size:20;not null;default:medium;index"`
	CreatorID    uint      `gorm:"not null;index"`
	TechnicianID *uint     `gorm:"index"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (TicketModel) TableName() string {
	return constants.TableTickets
}

type CommentModel struct {
	ID        uint      `gorm:"primaryKey"`
	TicketID  uint      `gorm:"not null;index"`
	CreatorID uint      `gorm:"not null;index"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;index"`
}

func (CommentModel) TableName() string {
	return constants.TableComments
}

// All returns every model managed by AutoMigrate, parents first.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&TicketModel{},
		&CommentModel{},
	}
}
