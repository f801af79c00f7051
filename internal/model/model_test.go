package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserJSONHidesCredentials(t *testing.T) {
	hash := "$2a$10$abc"
	ext := "google|123"
	u := User{
		Email:        "a@x.com",
		FirstName:    "A",
		LastName:     "B",
		PasswordHash: &hash,
		ExternalID:   &ext,
		Status:       AccountStatusActive,
		IsAthlete:    true,
	}

	b, err := json.Marshal(u)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &m))
	assert.NotContains(t, m, "password_hash")
	assert.NotContains(t, m, "external_id")
	assert.Equal(t, "active", m["status"])
	assert.Equal(t, true, m["is_athlete"])
	assert.Equal(t, false, m["is_coach"])
}

func TestRoles(t *testing.T) {
	u := User{IsCoach: true, IsAdmin: true}
	assert.Equal(t, []string{"coach", "admin"}, u.Roles())
	assert.True(t, u.HasRole(RoleCoach))
	assert.False(t, u.HasRole(RoleAthlete))
	assert.False(t, u.HasRole(Role("owner")))
}

func TestAccountStatusText(t *testing.T) {
	var s AccountStatus
	require.NoError(t, s.UnmarshalText([]byte("archived")))
	assert.Equal(t, AccountStatusArchived, s)
	assert.Error(t, s.UnmarshalText([]byte("deleted")))
	assert.Equal(t, "AccountStatus(9)", AccountStatus(9).String())
}

func TestDateJSON(t *testing.T) {
	d := NewDate(1990, time.March, 7)
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1990-03-07"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, d.Equal(back.Time))

	assert.Error(t, json.Unmarshal([]byte(`"07/03/1990"`), &back))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 5, 1, 13, 0, 0, 0, time.FixedZone("X", 3600))))
	assert.Equal(t, "2024-05-01", d.String())

	require.NoError(t, d.Scan([]byte("2023-12-31")))
	assert.Equal(t, "2023-12-31", d.String())

	assert.Error(t, d.Scan(42))
}

func TestGymRole(t *testing.T) {
	assert.True(t, GymRoleCoach.Valid())
	assert.False(t, GymRole("owner").Valid())
	assert.Equal(t, RoleCoach, GymRoleCoach.UserRole())
	assert.Equal(t, RoleAthlete, GymRoleAthlete.UserRole())

	m := GymRelationship{IsActive: true}
	assert.False(t, m.Confirmed())
	m.IsApproved = true
	assert.True(t, m.Confirmed())
}
