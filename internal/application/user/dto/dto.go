package dto

import (
	"time"

	"github.com/orris-inc/helpdesk/internal/domain/user"
)

// UserDTO is the public view of a user; the password hash never leaves the
// domain.
type UserDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenDTO follows the OAuth2 password flow response shape.
type TokenDTO struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func ToUserDTO(u *user.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:        u.ID(),
		Name:      u.Name().String(),
		Email:     u.Email().String(),
		Role:      u.Role().String(),
		CreatedAt: u.CreatedAt(),
	}
}
