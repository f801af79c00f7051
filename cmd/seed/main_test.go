package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"aiptrack/backend/internal/config"
	"aiptrack/backend/internal/repository/repotest"
	"aiptrack/backend/pkg/crypto"
)

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := repotest.New()
	seed := config.SeedConfig{
		AdminEmail:    "admin@aiptrack.com",
		AdminPassword: "admin-password",
		GymName:       "All In Performance",
		GymAddress:    "1 Main St",
	}

	for i := 0; i < 2; i++ {
		require.NoError(t, seedGym(ctx, store.Gyms(), seed, zap.NewNop()))
		require.NoError(t, seedAdmin(ctx, store.Users(), seed, bcrypt.MinCost, zap.NewNop()))
	}

	users, err := store.Users().List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.True(t, users[0].IsAdmin)
	assert.False(t, users[0].IsAthlete)
	require.NotNil(t, users[0].PasswordHash)
	assert.True(t, crypto.CheckPassword("admin-password", *users[0].PasswordHash))

	gym, err := store.Gyms().GetByName(ctx, "All In Performance")
	require.NoError(t, err)
	require.NotNil(t, gym.Address)
	assert.Equal(t, "1 Main St", *gym.Address)
}

func TestSeedAdminNeedsPassword(t *testing.T) {
	err := seedAdmin(context.Background(), repotest.New().Users(),
		config.SeedConfig{AdminEmail: "admin@aiptrack.com"}, bcrypt.MinCost, zap.NewNop())
	assert.Error(t, err)
}
