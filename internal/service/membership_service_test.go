package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aiptrack/backend/internal/model"
)

func TestRequestMembership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	athlete := f.addUser(t, "a@x.com", func(u *model.User) { u.IsAthlete = true })
	gym := f.addGym(t, "Main")

	m, err := f.members.RequestMembership(ctx, athlete.ID, gym.ID, model.GymRoleAthlete)
	require.NoError(t, err)
	assert.True(t, m.IsActive)
	assert.False(t, m.IsApproved)

	_, err = f.members.RequestMembership(ctx, athlete.ID, gym.ID, model.GymRoleAthlete)
	assert.ErrorIs(t, err, ErrMembershipExists)

	// Role derivation: the coach capacity needs the coach flag.
	_, err = f.members.RequestMembership(ctx, athlete.ID, gym.ID, model.GymRoleCoach)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "role")

	_, err = f.members.RequestMembership(ctx, athlete.ID, uuid.New(), model.GymRoleAthlete)
	assert.ErrorIs(t, err, ErrGymNotFound)
	_, err = f.members.RequestMembership(ctx, uuid.New(), gym.ID, model.GymRoleAthlete)
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = f.members.RequestMembership(ctx, athlete.ID, gym.ID, model.GymRole("owner"))
	require.ErrorAs(t, err, &verr)
}

func TestRequestMembershipReactivatesAsPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	athlete := f.addUser(t, "a@x.com", func(u *model.User) { u.IsAthlete = true })
	gym := f.addGym(t, "Main")
	f.confirm(t, athlete.ID, gym.ID, model.GymRoleAthlete)

	rels, err := f.members.ListMemberships(ctx, athlete.ID)
	require.NoError(t, err)
	require.Len(t, rels, 1)

	_, err = f.members.DeactivateMembership(ctx, athlete.ID, rels[0].ID)
	require.NoError(t, err)

	m, err := f.members.RequestMembership(ctx, athlete.ID, gym.ID, model.GymRoleAthlete)
	require.NoError(t, err)
	assert.Equal(t, rels[0].ID, m.ID)
	assert.True(t, m.IsActive)
	assert.False(t, m.IsApproved)
}

func TestApproveMembership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	gym := f.addGym(t, "Main")
	other := f.addGym(t, "Other")
	athlete := f.addUser(t, "a@x.com", func(u *model.User) { u.IsAthlete = true })
	coach := f.addUser(t, "c@x.com", func(u *model.User) { u.IsCoach = true })
	outsider := f.addUser(t, "o@x.com", func(u *model.User) { u.IsCoach = true })
	admin := f.addUser(t, "admin@x.com", func(u *model.User) { u.IsAdmin = true })
	f.confirm(t, coach.ID, gym.ID, model.GymRoleCoach)
	f.confirm(t, outsider.ID, other.ID, model.GymRoleCoach)

	m, err := f.members.RequestMembership(ctx, athlete.ID, gym.ID, model.GymRoleAthlete)
	require.NoError(t, err)

	_, err = f.members.ApproveMembership(ctx, outsider.ID, athlete.ID, m.ID)
	assert.ErrorIs(t, err, ErrForbidden, "coach of another gym")
	_, err = f.members.ApproveMembership(ctx, athlete.ID, athlete.ID, m.ID)
	assert.ErrorIs(t, err, ErrForbidden, "self approval")
	_, err = f.members.ApproveMembership(ctx, coach.ID, coach.ID, m.ID)
	assert.ErrorIs(t, err, ErrMembershipNotFound, "membership of a different user")

	approved, err := f.members.ApproveMembership(ctx, coach.ID, athlete.ID, m.ID)
	require.NoError(t, err)
	assert.True(t, approved.Confirmed())

	m2, err := f.members.RequestMembership(ctx, coach.ID, other.ID, model.GymRoleCoach)
	require.NoError(t, err)
	approved, err = f.members.ApproveMembership(ctx, admin.ID, coach.ID, m2.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)
}

func TestAssignCoach(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	gym := f.addGym(t, "Main")
	athlete := f.addUser(t, "a@x.com", func(u *model.User) { u.IsAthlete = true })
	coach := f.addUser(t, "c@x.com", func(u *model.User) { u.IsCoach = true })
	notCoach := f.addUser(t, "n@x.com", func(u *model.User) { u.IsAthlete = true })

	var verr *ValidationError
	_, err := f.members.AssignCoach(ctx, athlete.ID, athlete.ID, gym.ID)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "coach_id")

	_, err = f.members.AssignCoach(ctx, athlete.ID, notCoach.ID, gym.ID)
	require.ErrorAs(t, err, &verr)

	_, err = f.members.AssignCoach(ctx, athlete.ID, coach.ID, gym.ID)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "coach_id")
	assert.Contains(t, verr.Fields, "athlete_id")

	f.confirm(t, coach.ID, gym.ID, model.GymRoleCoach)
	f.confirm(t, athlete.ID, gym.ID, model.GymRoleAthlete)

	rel, err := f.members.AssignCoach(ctx, athlete.ID, coach.ID, gym.ID)
	require.NoError(t, err)
	assert.True(t, rel.IsActive)

	_, err = f.members.AssignCoach(ctx, athlete.ID, coach.ID, gym.ID)
	assert.ErrorIs(t, err, ErrCoachingExists)

	coaches, err := f.members.ListCoaches(ctx, athlete.ID)
	require.NoError(t, err)
	require.Len(t, coaches, 1)
	athletes, err := f.members.ListAthletes(ctx, coach.ID)
	require.NoError(t, err)
	require.Len(t, athletes, 1)

	_, err = f.members.EndCoaching(ctx, coach.ID, rel.ID)
	assert.ErrorIs(t, err, ErrRelationshipNotFound)
	ended, err := f.members.EndCoaching(ctx, athlete.ID, rel.ID)
	require.NoError(t, err)
	assert.False(t, ended.IsActive)

	coaches, err = f.members.ListCoaches(ctx, athlete.ID)
	require.NoError(t, err)
	assert.Empty(t, coaches)

	again, err := f.members.AssignCoach(ctx, athlete.ID, coach.ID, gym.ID)
	require.NoError(t, err)
	assert.Equal(t, rel.ID, again.ID)
	assert.True(t, again.IsActive)
}

func TestAssignCoachPerGym(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	north := f.addGym(t, "North")
	south := f.addGym(t, "South")
	athlete := f.addUser(t, "a@x.com", func(u *model.User) { u.IsAthlete = true })
	coach := f.addUser(t, "c@x.com", func(u *model.User) { u.IsCoach = true })
	for _, g := range []*model.Gym{north, south} {
		f.confirm(t, coach.ID, g.ID, model.GymRoleCoach)
		f.confirm(t, athlete.ID, g.ID, model.GymRoleAthlete)
	}

	a, err := f.members.AssignCoach(ctx, athlete.ID, coach.ID, north.ID)
	require.NoError(t, err)
	b, err := f.members.AssignCoach(ctx, athlete.ID, coach.ID, south.ID)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	athletes, err := f.members.ListAthletes(ctx, coach.ID)
	require.NoError(t, err)
	assert.Len(t, athletes, 2)
}
