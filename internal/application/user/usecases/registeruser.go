package usecases

import (
	"context"
	"strings"

	"github.com/orris-inc/helpdesk/internal/application/user/dto"
	"github.com/orris-inc/helpdesk/internal/domain/user"
	vo "github.com/orris-inc/helpdesk/internal/domain/user/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// RegisterUserCommand carries the requested role; roles are chosen at
// registration and never changed afterwards.
type RegisterUserCommand struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type RegisterUserUseCase struct {
	userRepo       user.Repository
	passwordHasher PasswordHasher
	passwordPolicy *vo.PasswordPolicy
	logger         logger.Interface
}

func NewRegisterUserUseCase(
	userRepo user.Repository,
	hasher PasswordHasher,
	policy *vo.PasswordPolicy,
	logger logger.Interface,
) *RegisterUserUseCase {
	if policy == nil {
		policy = vo.DefaultPasswordPolicy()
	}
	return &RegisterUserUseCase{
		userRepo:       userRepo,
		passwordHasher: hasher,
		passwordPolicy: policy,
		logger:         logger,
	}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, cmd RegisterUserCommand) (*dto.UserDTO, error) {
	name, err := vo.NewName(cmd.Name)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	role, err := vo.ParseRole(strings.ToLower(strings.TrimSpace(cmd.Role)))
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	password, err := vo.NewPassword(cmd.Password, uc.passwordPolicy)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, email.String())
	if err != nil {
		uc.logger.Errorw("failed to check existing user", "error", err)
		return nil, errors.NewInternalError("failed to register user")
	}
	if exists {
		uc.logger.Warnw("registration with existing email rejected", "email", email.String())
		return nil, errors.NewConflictError("Email already registered")
	}

	hash, err := uc.passwordHasher.Hash(password.String())
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, errors.NewInternalError("failed to register user")
	}

	newUser, err := user.NewUser(name, email, hash, role)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Create(ctx, newUser); err != nil {
		// a concurrent registration can still hit the unique index
		if errors.IsConflictError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to create user", "error", err)
		return nil, errors.NewInternalError("failed to register user")
	}

	uc.logger.Infow("user registered successfully", "user_id", newUser.ID(), "role", role)
	return dto.ToUserDTO(newUser), nil
}
