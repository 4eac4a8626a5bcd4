package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptPasswordHasher(t *testing.T) {
	h := NewBcryptPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("pass123")
	require.NoError(t, err)
	assert.NotEqual(t, "pass123", hash)

	assert.True(t, h.Verify("pass123", hash))
	assert.False(t, h.Verify("pass124", hash))
}

func TestBcryptPasswordHasherSalts(t *testing.T) {
	h := NewBcryptPasswordHasher(bcrypt.MinCost)

	a, err := h.Hash("pass123")
	require.NoError(t, err)
	b, err := h.Hash("pass123")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Equal(t, len(a), len(b))
}

func TestBcryptPasswordHasherLongPasswords(t *testing.T) {
	h := NewBcryptPasswordHasher(bcrypt.MinCost)
	base := strings.Repeat("x", 80)

	hash, err := h.Hash(base + "a")
	require.NoError(t, err)
	assert.False(t, h.Verify(base+"b", hash))
}

func TestBcryptPasswordHasherEdgeCases(t *testing.T) {
	h := NewBcryptPasswordHasher(0)

	_, err := h.Hash("")
	assert.Error(t, err)

	assert.False(t, h.Verify("pass123", "not-a-bcrypt-hash"))
	assert.False(t, h.Verify("pass123", ""))
}
