package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheck(t *testing.T) {
	hash, err := HashPassword("longenough", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "longenough", hash)

	assert.True(t, CheckPassword("longenough", hash))
	assert.False(t, CheckPassword("wrong-password", hash))
	assert.False(t, CheckPassword("longenough", ""))
}

func TestHashIsSalted(t *testing.T) {
	a, err := HashPassword("longenough", bcrypt.MinCost)
	require.NoError(t, err)
	b, err := HashPassword("longenough", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHashRejectsOverlongPassword(t *testing.T) {
	_, err := HashPassword(strings.Repeat("x", 73), bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}
