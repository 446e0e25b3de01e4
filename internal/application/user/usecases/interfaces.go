package usecases

import (
	"context"
	"time"

	"github.com/orris-inc/helpdesk/internal/application/user/dto"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// AccessToken is a signed bearer token and its absolute expiry.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenService issues and validates bearer tokens whose subject is the
// user's email.
type TokenService interface {
	IssueAccessToken(subject string) (*AccessToken, error)
	ValidateAccessToken(token string) (subject string, err error)
}

type RegisterUserExecutor interface {
	Execute(ctx context.Context, cmd RegisterUserCommand) (*dto.UserDTO, error)
}

type LoginExecutor interface {
	Execute(ctx context.Context, cmd LoginCommand) (*dto.TokenDTO, error)
}

type GetCurrentUserExecutor interface {
	Execute(ctx context.Context, query GetCurrentUserQuery) (*dto.UserDTO, error)
}

type AuthenticateExecutor interface {
	Execute(ctx context.Context, token string) (*dto.UserDTO, error)
}
