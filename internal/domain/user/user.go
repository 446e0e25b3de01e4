package user

import (
	"fmt"
	"time"

	vo "github.com/orris-inc/helpdesk/internal/domain/user/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/biztime"
)

// User is immutable after registration apart from the identifier assigned on insert.
type User struct {
	id           uint
	name         *vo.Name
	email        *vo.Email
	passwordHash string
	role         vo.Role
	createdAt    time.Time
}

// NewUser creates a user that has not been persisted yet
func NewUser(name *vo.Name, email *vo.Email, passwordHash string, role vo.Role) (*User, error) {
	if name == nil {
		return nil, fmt.Errorf("name is required")
	}
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	return &User{
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    biztime.NowUTC(),
	}, nil
}

// ReconstructUser rebuilds a user from persistence
func ReconstructUser(id uint, name *vo.Name, email *vo.Email, passwordHash string, role vo.Role, createdAt time.Time) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if name == nil || email == nil {
		return nil, fmt.Errorf("name and email are required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	return &User{
		id:           id,
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    createdAt,
	}, nil
}

func (u *User) ID() uint {
	return u.id
}

func (u *User) Name() *vo.Name {
	return u.name
}

func (u *User) Email() *vo.Email {
	return u.email
}

// PasswordHash returns the stored digest. It must never leave the application layer.
func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) Role() vo.Role {
	return u.role
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// SetID sets the identifier generated by the store. It can only be called once.
func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}
