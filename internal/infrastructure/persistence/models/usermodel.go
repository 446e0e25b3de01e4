package models

import (
	"time"

	"github.com/orris-inc/helpdesk/internal/shared/constants"
)

// UserModel represents the database persistence model for users
// This is the anti-corruption layer between domain and database
type UserModel struct {
	ID           uint      `gorm:"primarykey"`
	Name         string    `gorm:"not null;size:100"`
	Email        string    `gorm:"uniqueIndex:uk_users_email;not null;size:255"`
	PasswordHash string    `gorm:"not null;size:255"`
	Role         string    `gorm:"not null;size:20;default:employee;index"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return constants.TableUsers
}
