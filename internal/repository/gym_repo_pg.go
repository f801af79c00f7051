package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"aiptrack/backend/internal/model"
)

type pgGymRepository struct {
	db *gorm.DB
}

func NewPGGymRepository(db *gorm.DB) GymRepository {
	return &pgGymRepository{db: db}
}

func (r *pgGymRepository) Create(ctx context.Context, gym *model.Gym) error {
	return r.db.WithContext(ctx).Create(gym).Error
}

func (r *pgGymRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Gym, error) {
	var gym model.Gym
	if err := r.db.WithContext(ctx).First(&gym, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &gym, nil
}

func (r *pgGymRepository) GetByName(ctx context.Context, name string) (*model.Gym, error) {
	var gym model.Gym
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&gym).Error; err != nil {
		return nil, err
	}
	return &gym, nil
}
