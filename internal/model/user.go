package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AccountStatus replaces a boolean archived flag.
type AccountStatus int16

const (
	AccountStatusActive   AccountStatus = 1
	AccountStatusArchived AccountStatus = 2
)

func (s AccountStatus) String() string {
	switch s {
	case AccountStatusActive:
		return "active"
	case AccountStatusArchived:
		return "archived"
	}
	return fmt.Sprintf("AccountStatus(%d)", int16(s))
}

func (s AccountStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *AccountStatus) UnmarshalText(b []byte) error {
	switch string(b) {
	case "active":
		*s = AccountStatusActive
	case "archived":
		*s = AccountStatusArchived
	default:
		return fmt.Errorf("unknown account status %q", b)
	}
	return nil
}

type Role string

const (
	RoleAthlete Role = "athlete"
	RoleCoach   Role = "coach"
	RoleAdmin   Role = "admin"
)

type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
	SexOther  Sex = "Other"
)

type User struct {
	ID              uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ExternalID      *string       `gorm:"type:varchar(255);index" json:"-"`
	Status          AccountStatus `gorm:"type:smallint;not null;default:1;index" json:"status"`
	Email           string        `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash    *string       `gorm:"type:varchar(255)" json:"-"`
	FirstName       string        `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName        string        `gorm:"type:varchar(100);not null" json:"last_name"`
	NickName        *string       `gorm:"type:varchar(100)" json:"nick_name"`
	DateOfBirth     *Date         `gorm:"type:date" json:"date_of_birth,omitempty"`
	Sex             *Sex          `gorm:"type:varchar(8)" json:"sex,omitempty"`
	Height          *float64      `gorm:"type:numeric(5,3)" json:"height,omitempty"`
	Weight          *float64      `gorm:"type:numeric(6,2)" json:"weight,omitempty"`
	ProfileImageURL *string       `gorm:"type:varchar(500)" json:"profile_image_url,omitempty"`
	LastTested      *Date         `gorm:"type:date" json:"last_tested,omitempty"`
	IsAthlete       bool          `gorm:"not null;default:false" json:"is_athlete"`
	IsCoach         bool          `gorm:"not null;default:false" json:"is_coach"`
	IsAdmin         bool          `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (u *User) IsArchived() bool { return u.Status == AccountStatusArchived }

func (u *User) HasRole(role Role) bool {
	switch role {
	case RoleAthlete:
		return u.IsAthlete
	case RoleCoach:
		return u.IsCoach
	case RoleAdmin:
		return u.IsAdmin
	}
	return false
}

// Roles lists the role flags that are set, in a stable order.
func (u *User) Roles() []string {
	roles := make([]string, 0, 3)
	for _, r := range []Role{RoleAthlete, RoleCoach, RoleAdmin} {
		if u.HasRole(r) {
			roles = append(roles, string(r))
		}
	}
	return roles
}
