package mappers

import (
	"fmt"

	"github.com/orris-inc/helpdesk/internal/domain/user"
	vo "github.com/orris-inc/helpdesk/internal/domain/user/valueobjects"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
)

// UserMapper handles the conversion between domain entities and persistence models
type UserMapper interface {
	ToEntity(model *models.UserModel) (*user.User, error)
	ToModel(entity *user.User) *models.UserModel
}

type userMapper struct{}

func NewUserMapper() UserMapper {
	return &userMapper{}
}

// ToEntity converts a persistence model to a domain entity
func (m *userMapper) ToEntity(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, nil
	}

	email, err := vo.NewEmail(model.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid stored email for user %d: %w", model.ID, err)
	}

	name, err := vo.NewName(model.Name)
	if err != nil {
		return nil, fmt.Errorf("invalid stored name for user %d: %w", model.ID, err)
	}

	role, err := vo.ParseRole(model.Role)
	if err != nil {
		return nil, fmt.Errorf("invalid stored role for user %d: %w", model.ID, err)
	}

	return user.ReconstructUser(model.ID, name, email, model.PasswordHash, role, model.CreatedAt)
}

// ToModel converts a domain entity to a persistence model
func (m *userMapper) ToModel(entity *user.User) *models.UserModel {
	if entity == nil {
		return nil
	}

	return &models.UserModel{
		ID:           entity.ID(),
		Name:         entity.Name().String(),
		Email:        entity.Email().String(),
		PasswordHash: entity.PasswordHash(),
		Role:         entity.Role().String(),
		CreatedAt:    entity.CreatedAt(),
	}
}
