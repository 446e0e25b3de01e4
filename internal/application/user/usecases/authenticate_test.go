package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/domain/user"
	vo "github.com/orris-inc/helpdesk/internal/domain/user/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
)

func TestAuthenticateUseCase(t *testing.T) {
	stored := newStoredUser(t, 3, "ada@example.com", "pw", vo.RoleAdmin)
	repo := &mockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*user.User, error) {
			if email == "ada@example.com" {
				return stored, nil
			}
			return nil, nil
		},
	}
	tokens := &mockTokenService{
		ValidateFunc: func(token string) (string, error) {
			switch token {
			case "good":
				return "ada@example.com", nil
			case "orphan":
				return "gone@example.com", nil
			case "expired":
				return "", errors.NewTokenExpiredError("access token")
			default:
				return "", errors.NewTokenInvalidError("access token")
			}
		},
	}
	uc := NewAuthenticateUseCase(repo, tokens, testLogger())

	result, err := uc.Execute(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, uint(3), result.ID)
	assert.Equal(t, "admin", result.Role)

	tests := []struct {
		token string
		want  errors.ErrorType
	}{
		{"", errors.ErrorTypeTokenMissing},
		{"expired", errors.ErrorTypeTokenExpired},
		{"garbage", errors.ErrorTypeTokenInvalid},
		{"orphan", errors.ErrorTypeTokenInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.token)
			authErr := errors.GetAuthError(err)
			require.NotNil(t, authErr)
			assert.Equal(t, tt.want, authErr.Type)
		})
	}
}

func TestGetCurrentUserUseCase(t *testing.T) {
	stored := newStoredUser(t, 8, "tom@example.com", "pw", vo.RoleTechnician)
	repo := &mockUserRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
			if id == 8 {
				return stored, nil
			}
			return nil, nil
		},
	}
	uc := NewGetCurrentUserUseCase(repo, testLogger())

	result, err := uc.Execute(context.Background(), GetCurrentUserQuery{UserID: 8})
	require.NoError(t, err)
	assert.Equal(t, "tom@example.com", result.Email)
	assert.Equal(t, "technician", result.Role)

	_, err = uc.Execute(context.Background(), GetCurrentUserQuery{UserID: 99})
	assert.True(t, errors.IsAuthError(err))
}
