package usecases

import (
	"context"
	"strings"

	"github.com/orris-inc/helpdesk/internal/application/user/dto"
	"github.com/orris-inc/helpdesk/internal/domain/user"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// AuthenticateUseCase resolves a bearer token to the stored user.
type AuthenticateUseCase struct {
	userRepo user.Repository
	tokens   TokenService
	logger   logger.Interface
}

func NewAuthenticateUseCase(userRepo user.Repository, tokens TokenService, logger logger.Interface) *AuthenticateUseCase {
	return &AuthenticateUseCase{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

func (uc *AuthenticateUseCase) Execute(ctx context.Context, token string) (*dto.UserDTO, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.NewTokenMissingError()
	}

	subject, err := uc.tokens.ValidateAccessToken(token)
	if err != nil {
		if errors.ShouldLogAuthError(err) {
			uc.logger.Warnw("access token rejected", "error", err)
		}
		if errors.IsAuthError(err) {
			return nil, err
		}
		return nil, errors.NewTokenInvalidError("access")
	}

	u, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(subject))
	if err != nil {
		uc.logger.Errorw("failed to resolve token subject", "error", err)
		return nil, errors.NewInternalError("failed to authenticate")
	}
	if u == nil {
		// token outlived its user or was minted for an unknown email
		uc.logger.Warnw("token subject does not match any user")
		return nil, errors.NewTokenInvalidError("access")
	}

	return dto.ToUserDTO(u), nil
}
