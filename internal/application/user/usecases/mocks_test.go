package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/domain/user"
	vo "github.com/orris-inc/helpdesk/internal/domain/user/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type mockUserRepository struct {
	CreateFunc        func(ctx context.Context, u *user.User) error
	GetByIDFunc       func(ctx context.Context, id uint) (*user.User, error)
	GetByEmailFunc    func(ctx context.Context, email string) (*user.User, error)
	ExistsByEmailFunc func(ctx context.Context, email string) (bool, error)
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return u.SetID(1)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

// fakeHasher prefixes passwords so tests can assert on stored hashes.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Verify(password, hash string) error {
	if hash != "hashed:"+password {
		return fmt.Errorf("password verification failed")
	}
	return nil
}

type mockTokenService struct {
	IssueFunc    func(subject string) (*AccessToken, error)
	ValidateFunc func(token string) (string, error)
}

func (m *mockTokenService) IssueAccessToken(subject string) (*AccessToken, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(subject)
	}
	return &AccessToken{Token: "token-for-" + subject, ExpiresAt: time.Now().Add(30 * time.Minute)}, nil
}

func (m *mockTokenService) ValidateAccessToken(token string) (string, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token)
	}
	return "", fmt.Errorf("not configured")
}

func testLogger() logger.Interface {
	return logger.NewDiscardLogger()
}

func newStoredUser(t *testing.T, id uint, email, password string, role vo.Role) *user.User {
	t.Helper()
	name, err := vo.NewName("Test User")
	require.NoError(t, err)
	addr, err := vo.NewEmail(email)
	require.NoError(t, err)
	u, err := user.ReconstructUser(id, name, addr, "hashed:"+password, role, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return u
}
