package repository

import (
	"context"

	"github.com/google/uuid"

	"aiptrack/backend/internal/model"
)

type GymRelationshipRepository interface {
	Create(ctx context.Context, rel *model.GymRelationship) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.GymRelationship, error)
	Find(ctx context.Context, userID, gymID uuid.UUID, role model.GymRole) (*model.GymRelationship, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]model.GymRelationship, error)
	Update(ctx context.Context, rel *model.GymRelationship) error
}

type CoachRelationshipRepository interface {
	Create(ctx context.Context, rel *model.CoachRelationship) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.CoachRelationship, error)
	Find(ctx context.Context, athleteID, coachID, gymID uuid.UUID) (*model.CoachRelationship, error)
	ListActiveByAthlete(ctx context.Context, athleteID uuid.UUID) ([]model.CoachRelationship, error)
	ListActiveByCoach(ctx context.Context, coachID uuid.UUID) ([]model.CoachRelationship, error)
	Update(ctx context.Context, rel *model.CoachRelationship) error
}
