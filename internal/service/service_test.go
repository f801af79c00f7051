package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"aiptrack/backend/internal/model"
	"aiptrack/backend/internal/repository/repotest"
	"aiptrack/backend/pkg/crypto"
	jwtpkg "aiptrack/backend/pkg/jwt"
)

type fixture struct {
	store   *repotest.Store
	now     time.Time
	jwt     *jwtpkg.Manager
	auth    AuthService
	users   UserService
	members MembershipService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store: repotest.New(),
		now:   time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.jwt = jwtpkg.NewManager("test-key", "aiptrack", 10*time.Hour,
		jwtpkg.WithClock(func() time.Time { return f.now }))
	f.auth = NewAuthService(f.store.Users(), f.jwt, nil, AuthOptions{BcryptCost: bcrypt.MinCost}, nil)
	f.users = NewUserService(f.store.Users(), bcrypt.MinCost, nil)
	f.members = NewMembershipService(f.store.Users(), f.store.Gyms(), f.store.Memberships(), f.store.Coaching(), nil)
	return f
}

// addUser inserts a user with a password directly, bypassing role defaults.
func (f *fixture) addUser(t *testing.T, email string, mutate func(*model.User)) *model.User {
	t.Helper()
	hash, err := crypto.HashPassword("password123", bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.User{Email: email, FirstName: "F", LastName: "L", PasswordHash: &hash}
	if mutate != nil {
		mutate(u)
	}
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	return u
}

func (f *fixture) addGym(t *testing.T, name string) *model.Gym {
	t.Helper()
	g := &model.Gym{Name: name}
	require.NoError(t, f.store.Gyms().Create(context.Background(), g))
	return g
}

// confirm creates an active approved membership.
func (f *fixture) confirm(t *testing.T, userID, gymID uuid.UUID, role model.GymRole) {
	t.Helper()
	require.NoError(t, f.store.Memberships().Create(context.Background(), &model.GymRelationship{
		UserID: userID, GymID: gymID, Role: role, IsActive: true, IsApproved: true,
	}))
}
