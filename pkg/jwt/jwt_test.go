package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewManager("secret", "aiptrack", 10*time.Hour)
	userID := uuid.New()

	token, issued, err := m.GenerateAccessToken(userID, []string{"athlete"})
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, []string{"athlete"}, claims.Roles)
	assert.Equal(t, issued.ID, claims.ID)
	assert.Equal(t, 10*time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))

	got, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestEveryTokenHasDistinctID(t *testing.T) {
	m := NewManager("secret", "aiptrack", time.Hour)
	userID := uuid.New()

	_, a, err := m.GenerateAccessToken(userID, nil)
	require.NoError(t, err)
	_, b, err := m.GenerateAccessToken(userID, nil)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestValidateRejectsExpired(t *testing.T) {
	issuedAt := time.Now().Add(-11 * time.Hour)
	issuer := NewManager("secret", "aiptrack", 10*time.Hour, WithClock(func() time.Time { return issuedAt }))
	token, _, err := issuer.GenerateAccessToken(uuid.New(), nil)
	require.NoError(t, err)

	_, err = NewManager("secret", "aiptrack", 10*time.Hour).Validate(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateRejectsForeignTokens(t *testing.T) {
	m := NewManager("secret", "aiptrack", time.Hour)

	otherKey, _, err := NewManager("other", "aiptrack", time.Hour).GenerateAccessToken(uuid.New(), nil)
	require.NoError(t, err)
	_, err = m.Validate(otherKey)
	assert.Error(t, err)

	otherIssuer, _, err := NewManager("secret", "someone-else", time.Hour).GenerateAccessToken(uuid.New(), nil)
	require.NoError(t, err)
	_, err = m.Validate(otherIssuer)
	assert.ErrorIs(t, err, ErrInvalidIssuer)

	_, err = m.Validate("not-a-token")
	assert.Error(t, err)
}

func TestValidateRejectsNonUUIDSubject(t *testing.T) {
	now := time.Now()
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "aiptrack",
		Subject:   "42",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewManager("secret", "aiptrack", time.Hour).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
