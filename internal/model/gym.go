package model

import (
	"time"

	"github.com/google/uuid"
)

// Gym is the foreign key target for memberships and coaching. There is no
// gym CRUD yet; rows come from cmd/seed.
type Gym struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Address   *string   `gorm:"type:varchar(500)" json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Gym) TableName() string { return "gyms" }
