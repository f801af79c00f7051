package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"aiptrack/backend/internal/model"
)

type pgGymRelationshipRepository struct {
	db *gorm.DB
}

func NewPGGymRelationshipRepository(db *gorm.DB) GymRelationshipRepository {
	return &pgGymRelationshipRepository{db: db}
}

func (r *pgGymRelationshipRepository) Create(ctx context.Context, rel *model.GymRelationship) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(rel).Error
}

func (r *pgGymRelationshipRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.GymRelationship, error) {
	var rel model.GymRelationship
	if err := r.db.WithContext(ctx).First(&rel, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rel, nil
}

func (r *pgGymRelationshipRepository) Find(
	ctx context.Context, userID, gymID uuid.UUID, role model.GymRole,
) (*model.GymRelationship, error) {
	var rel model.GymRelationship
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND gym_id = ? AND role = ?", userID, gymID, role).
		First(&rel).Error
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

func (r *pgGymRelationshipRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]model.GymRelationship, error) {
	var rels []model.GymRelationship
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&rels).Error
	return rels, err
}

// Update writes only the mutable flags.
func (r *pgGymRelationshipRepository) Update(ctx context.Context, rel *model.GymRelationship) error {
	return r.db.WithContext(ctx).
		Model(&model.GymRelationship{}).
		Where("id = ?", rel.ID).
		Updates(map[string]interface{}{
			"is_active":   rel.IsActive,
			"is_approved": rel.IsApproved,
		}).Error
}

type pgCoachRelationshipRepository struct {
	db *gorm.DB
}

func NewPGCoachRelationshipRepository(db *gorm.DB) CoachRelationshipRepository {
	return &pgCoachRelationshipRepository{db: db}
}

func (r *pgCoachRelationshipRepository) Create(ctx context.Context, rel *model.CoachRelationship) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(rel).Error
}

func (r *pgCoachRelationshipRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.CoachRelationship, error) {
	var rel model.CoachRelationship
	if err := r.db.WithContext(ctx).First(&rel, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rel, nil
}

func (r *pgCoachRelationshipRepository) Find(
	ctx context.Context, athleteID, coachID, gymID uuid.UUID,
) (*model.CoachRelationship, error) {
	var rel model.CoachRelationship
	err := r.db.WithContext(ctx).
		Where("athlete_id = ? AND coach_id = ? AND gym_id = ?", athleteID, coachID, gymID).
		First(&rel).Error
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

func (r *pgCoachRelationshipRepository) ListActiveByAthlete(ctx context.Context, athleteID uuid.UUID) ([]model.CoachRelationship, error) {
	var rels []model.CoachRelationship
	err := r.db.WithContext(ctx).
		Where("athlete_id = ? AND is_active = ?", athleteID, true).
		Order("created_at ASC").
		Find(&rels).Error
	return rels, err
}

func (r *pgCoachRelationshipRepository) ListActiveByCoach(ctx context.Context, coachID uuid.UUID) ([]model.CoachRelationship, error) {
	var rels []model.CoachRelationship
	err := r.db.WithContext(ctx).
		Where("coach_id = ? AND is_active = ?", coachID, true).
		Order("created_at ASC").
		Find(&rels).Error
	return rels, err
}

func (r *pgCoachRelationshipRepository) Update(ctx context.Context, rel *model.CoachRelationship) error {
	return r.db.WithContext(ctx).
		Model(&model.CoachRelationship{}).
		Where("id = ?", rel.ID).
		Update("is_active", rel.IsActive).Error
}
