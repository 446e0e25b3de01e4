package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/orris-inc/helpdesk/internal/application/user/dto"
	"github.com/orris-inc/helpdesk/internal/domain/user"
	"github.com/orris-inc/helpdesk/internal/shared/constants"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type LoginCommand struct {
	Email    string
	Password string
}

type LoginUseCase struct {
	userRepo       user.Repository
	passwordHasher PasswordHasher
	tokens         TokenService
	now            func() time.Time
	logger         logger.Interface
}

func NewLoginUseCase(
	userRepo user.Repository,
	hasher PasswordHasher,
	tokens TokenService,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo:       userRepo,
		passwordHasher: hasher,
		tokens:         tokens,
		now:            time.Now,
		logger:         logger,
	}
}

// Execute returns the same invalid_credentials error for an unknown email
// and a wrong password.
func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*dto.TokenDTO, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if email == "" || cmd.Password == "" {
		return nil, errors.NewInvalidCredentialsError()
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, errors.NewInternalError("failed to authenticate")
	}
	if existing == nil {
		uc.logger.Infow("login failed", "reason", "unknown email")
		return nil, errors.NewInvalidCredentialsError()
	}

	if err := uc.passwordHasher.Verify(cmd.Password, existing.PasswordHash()); err != nil {
		uc.logger.Infow("login failed", "reason", "wrong password", "user_id", existing.ID())
		return nil, errors.NewInvalidCredentialsError()
	}

	token, err := uc.tokens.IssueAccessToken(existing.Email().String())
	if err != nil {
		uc.logger.Errorw("failed to issue access token", "user_id", existing.ID(), "error", err)
		return nil, errors.NewInternalError("failed to issue access token")
	}

	expiresIn := int64(token.ExpiresAt.Sub(uc.now()).Seconds())
	if expiresIn < 0 {
		expiresIn = 0
	}

	uc.logger.Infow("user logged in successfully", "user_id", existing.ID())

	return &dto.TokenDTO{
		AccessToken: token.Token,
		TokenType:   constants.TokenTypeBearer,
		ExpiresIn:   expiresIn,
	}, nil
}
