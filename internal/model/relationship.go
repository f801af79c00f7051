package model

import (
	"time"

	"github.com/google/uuid"
)

// GymRole is the capacity in which a user belongs to a gym.
type GymRole string

const (
	GymRoleAthlete GymRole = "athlete"
	GymRoleCoach   GymRole = "coach"
)

func (r GymRole) Valid() bool {
	return r == GymRoleAthlete || r == GymRoleCoach
}

// UserRole maps a membership role onto the account role flag it requires.
func (r GymRole) UserRole() Role {
	if r == GymRoleCoach {
		return RoleCoach
	}
	return RoleAthlete
}

// GymRelationship is a user's membership in a gym. Approval is independent
// of the active flag: a membership can be active and still pending.
type GymRelationship struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_gym_rel_user_gym_role" json:"user_id"`
	GymID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_gym_rel_user_gym_role;index" json:"gym_id"`
	Role       GymRole   `gorm:"type:varchar(16);not null;uniqueIndex:idx_gym_rel_user_gym_role" json:"role"`
	IsActive   bool      `gorm:"not null;default:true" json:"is_active"`
	IsApproved bool      `gorm:"not null;default:false" json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Gym  Gym  `gorm:"foreignKey:GymID;constraint:OnDelete:CASCADE" json:"-"`
}

func (GymRelationship) TableName() string { return "user_gym_relationships" }

// Confirmed reports whether the membership currently grants access to the gym.
func (g *GymRelationship) Confirmed() bool { return g.IsActive && g.IsApproved }

// CoachRelationship links an athlete to a coach within one gym. The same pair
// of users may hold independent relationships in different gyms.
type CoachRelationship struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AthleteID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_coach_rel_triple;index;check:chk_coach_rel_distinct_users,athlete_id <> coach_id" json:"athlete_id"`
	CoachID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_coach_rel_triple;index" json:"coach_id"`
	GymID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_coach_rel_triple" json:"gym_id"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`

	Athlete User `gorm:"foreignKey:AthleteID;constraint:OnDelete:CASCADE" json:"-"`
	Coach   User `gorm:"foreignKey:CoachID;constraint:OnDelete:CASCADE" json:"-"`
	Gym     Gym  `gorm:"foreignKey:GymID;constraint:OnDelete:CASCADE" json:"-"`
}

func (CoachRelationship) TableName() string { return "user_coach_relationships" }
