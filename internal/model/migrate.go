package model

import "gorm.io/gorm"

// AutoMigrate runs GORM auto-migration for all models and creates custom indexes.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&Gym{},
		&User{},
		&GymRelationship{},
		&CoachRelationship{},
	); err != nil {
		return err
	}

	// Login only ever looks up active accounts.
	return db.Exec(
		"CREATE INDEX IF NOT EXISTS idx_users_active_email " +
			"ON users (email) WHERE status = 1",
	).Error
}
