package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/domain/user"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
)

func TestRegisterUserUseCase_Execute(t *testing.T) {
	var stored *user.User
	repo := &mockUserRepository{
		CreateFunc: func(ctx context.Context, u *user.User) error {
			stored = u
			return u.SetID(12)
		},
	}
	uc := NewRegisterUserUseCase(repo, fakeHasher{}, nil, testLogger())

	result, err := uc.Execute(context.Background(), RegisterUserCommand{
		Name:     "Tess Tech",
		Email:    "  Tess@Example.com ",
		Password: "s3cret-pass",
		Role:     "Technician",
	})
	require.NoError(t, err)
	require.NotNil(t, stored)

	assert.Equal(t, uint(12), result.ID)
	assert.Equal(t, "tess@example.com", result.Email)
	assert.Equal(t, "technician", result.Role)
	assert.Equal(t, "hashed:s3cret-pass", stored.PasswordHash())
}

func TestRegisterUserUseCase_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepository{
		ExistsByEmailFunc: func(ctx context.Context, email string) (bool, error) {
			assert.Equal(t, "dup@example.com", email)
			return true, nil
		},
		CreateFunc: func(ctx context.Context, u *user.User) error {
			t.Fatal("create must not be called")
			return nil
		},
	}
	uc := NewRegisterUserUseCase(repo, fakeHasher{}, nil, testLogger())

	_, err := uc.Execute(context.Background(), RegisterUserCommand{
		Name: "Dup", Email: "DUP@example.com", Password: "password1", Role: "employee",
	})
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
}

func TestRegisterUserUseCase_UniqueIndexRace(t *testing.T) {
	repo := &mockUserRepository{
		CreateFunc: func(ctx context.Context, u *user.User) error {
			return errors.NewConflictError("Email already registered")
		},
	}
	uc := NewRegisterUserUseCase(repo, fakeHasher{}, nil, testLogger())

	_, err := uc.Execute(context.Background(), RegisterUserCommand{
		Name: "Racer", Email: "race@example.com", Password: "password1", Role: "admin",
	})
	assert.True(t, errors.IsConflictError(err))
}

func TestRegisterUserUseCase_Validation(t *testing.T) {
	tests := []struct {
		name string
		cmd  RegisterUserCommand
	}{
		{"empty name", RegisterUserCommand{Name: " ", Email: "a@example.com", Password: "password1", Role: "employee"}},
		{"bad email", RegisterUserCommand{Name: "A", Email: "not-an-email", Password: "password1", Role: "employee"}},
		{"unknown role", RegisterUserCommand{Name: "A", Email: "a@example.com", Password: "password1", Role: "manager"}},
		{"short password", RegisterUserCommand{Name: "A", Email: "a@example.com", Password: "short", Role: "employee"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewRegisterUserUseCase(&mockUserRepository{}, fakeHasher{}, nil, testLogger())
			_, err := uc.Execute(context.Background(), tt.cmd)
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}
