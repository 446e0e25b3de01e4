package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptPasswordHasher_RoundTrip(t *testing.T) {
	h := NewBcryptPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.NoError(t, h.Verify("secret123", hash))
	assert.Error(t, h.Verify("secret124", hash))
}

func TestBcryptPasswordHasher_Salted(t *testing.T) {
	h := NewBcryptPasswordHasher(bcrypt.MinCost)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestBcryptPasswordHasher_Edges(t *testing.T) {
	h := NewBcryptPasswordHasher(1000)
	assert.Equal(t, bcrypt.DefaultCost, h.cost)

	_, err := NewBcryptPasswordHasher(bcrypt.MinCost).Hash(strings.Repeat("p", MaxPasswordBytes+1))
	assert.Error(t, err)

	assert.Error(t, h.Verify("anything", "not-a-bcrypt-hash"))
}
