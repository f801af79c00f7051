package repository

import (
	"context"

	"github.com/google/uuid"

	"aiptrack/backend/internal/model"
)

type GymRepository interface {
	Create(ctx context.Context, gym *model.Gym) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Gym, error)
	GetByName(ctx context.Context, name string) (*model.Gym, error)
}
