package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/orris-inc/helpdesk/internal/domain/user/valueobjects"
)

func mustName(t *testing.T, s string) *vo.Name {
	t.Helper()
	n, err := vo.NewName(s)
	require.NoError(t, err)
	return n
}

func mustEmail(t *testing.T, s string) *vo.Email {
	t.Helper()
	e, err := vo.NewEmail(s)
	require.NoError(t, err)
	return e
}

func TestNewUser(t *testing.T) {
	u, err := NewUser(mustName(t, "Alice"), mustEmail(t, "alice@corp.io"), "digest", vo.RoleTechnician)
	require.NoError(t, err)

	assert.Zero(t, u.ID())
	assert.Equal(t, "alice@corp.io", u.Email().String())
	assert.Equal(t, vo.RoleTechnician, u.Role())
	assert.False(t, u.CreatedAt().IsZero())
	assert.Equal(t, time.UTC, u.CreatedAt().Location())
}

func TestNewUser_Invalid(t *testing.T) {
	name := mustName(t, "Alice")
	email := mustEmail(t, "alice@corp.io")

	_, err := NewUser(nil, email, "digest", vo.RoleAdmin)
	assert.Error(t, err)
	_, err = NewUser(name, nil, "digest", vo.RoleAdmin)
	assert.Error(t, err)
	_, err = NewUser(name, email, "", vo.RoleAdmin)
	assert.Error(t, err)
	_, err = NewUser(name, email, "digest", vo.Role("root"))
	assert.Error(t, err)
}

func TestUser_SetID(t *testing.T) {
	u, err := NewUser(mustName(t, "Bob"), mustEmail(t, "bob@corp.io"), "digest", vo.RoleEmployee)
	require.NoError(t, err)

	assert.Error(t, u.SetID(0))
	require.NoError(t, u.SetID(4))
	assert.Equal(t, uint(4), u.ID())
	assert.Error(t, u.SetID(5))
}

func TestReconstructUser(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	u, err := ReconstructUser(3, mustName(t, "Carol"), mustEmail(t, "carol@corp.io"), "digest", vo.RoleAdmin, created)
	require.NoError(t, err)
	assert.Equal(t, uint(3), u.ID())
	assert.Equal(t, created, u.CreatedAt())

	_, err = ReconstructUser(0, mustName(t, "Carol"), mustEmail(t, "carol@corp.io"), "digest", vo.RoleAdmin, created)
	assert.Error(t, err)
}
