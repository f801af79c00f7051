package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"aiptrack/backend/internal/model"
	"aiptrack/backend/internal/repository"
)

// MembershipService manages gym memberships and coach assignments.
// Relationships are deactivated, never deleted.
type MembershipService interface {
	RequestMembership(ctx context.Context, userID, gymID uuid.UUID, role model.GymRole) (*model.GymRelationship, error)
	ApproveMembership(ctx context.Context, approverID, userID, membershipID uuid.UUID) (*model.GymRelationship, error)
	DeactivateMembership(ctx context.Context, userID, membershipID uuid.UUID) (*model.GymRelationship, error)
	ListMemberships(ctx context.Context, userID uuid.UUID) ([]model.GymRelationship, error)

	AssignCoach(ctx context.Context, athleteID, coachID, gymID uuid.UUID) (*model.CoachRelationship, error)
	EndCoaching(ctx context.Context, athleteID, relationshipID uuid.UUID) (*model.CoachRelationship, error)
	ListCoaches(ctx context.Context, athleteID uuid.UUID) ([]model.CoachRelationship, error)
	ListAthletes(ctx context.Context, coachID uuid.UUID) ([]model.CoachRelationship, error)
}

type membershipService struct {
	userRepo   repository.UserRepository
	gymRepo    repository.GymRepository
	memberRepo repository.GymRelationshipRepository
	coachRepo  repository.CoachRelationshipRepository
	log        *zap.Logger
}

func NewMembershipService(
	userRepo repository.UserRepository,
	gymRepo repository.GymRepository,
	memberRepo repository.GymRelationshipRepository,
	coachRepo repository.CoachRelationshipRepository,
	log *zap.Logger,
) MembershipService {
	if log == nil {
		log = zap.NewNop()
	}
	return &membershipService{
		userRepo:   userRepo,
		gymRepo:    gymRepo,
		memberRepo: memberRepo,
		coachRepo:  coachRepo,
		log:        log,
	}
}

func (s *membershipService) RequestMembership(
	ctx context.Context, userID, gymID uuid.UUID, role model.GymRole,
) (*model.GymRelationship, error) {
	if !role.Valid() {
		return nil, invalid("role", "must be one of: athlete coach")
	}
	user, err := activeUser(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}
	if err := s.requireGym(ctx, gymID); err != nil {
		return nil, err
	}
	if !user.HasRole(role.UserRole()) {
		return nil, invalid("role", fmt.Sprintf("user does not hold the %s role", role))
	}

	existing, err := s.memberRepo.Find(ctx, userID, gymID, role)
	switch {
	case err == nil:
		if existing.IsActive {
			return nil, ErrMembershipExists
		}
		// Rejoining starts a fresh approval cycle.
		existing.IsActive = true
		existing.IsApproved = false
		if err := s.memberRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to reactivate membership: %w", err)
		}
		return existing, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("failed to find membership: %w", err)
	}

	rel := &model.GymRelationship{
		UserID:     userID,
		GymID:      gymID,
		Role:       role,
		IsActive:   true,
		IsApproved: false,
	}
	if err := s.memberRepo.Create(ctx, rel); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrMembershipExists
		}
		return nil, fmt.Errorf("failed to create membership: %w", err)
	}
	return rel, nil
}

// ApproveMembership requires the approver to be an admin or a confirmed
// coach of the same gym.
func (s *membershipService) ApproveMembership(
	ctx context.Context, approverID, userID, membershipID uuid.UUID,
) (*model.GymRelationship, error) {
	rel, err := s.ownedMembership(ctx, userID, membershipID)
	if err != nil {
		return nil, err
	}

	approver, err := activeUser(ctx, s.userRepo, approverID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	if !approver.IsAdmin {
		ok, err := s.confirmedMember(ctx, approver, rel.GymID, model.GymRoleCoach)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrForbidden
		}
	}

	if !rel.IsActive {
		return nil, invalid("membership_id", "membership is not active")
	}
	if rel.IsApproved {
		return rel, nil
	}
	rel.IsApproved = true
	if err := s.memberRepo.Update(ctx, rel); err != nil {
		return nil, fmt.Errorf("failed to approve membership: %w", err)
	}
	s.log.Info("membership approved",
		zap.String("membership_id", rel.ID.String()),
		zap.String("approver_id", approverID.String()),
	)
	return rel, nil
}

func (s *membershipService) DeactivateMembership(
	ctx context.Context, userID, membershipID uuid.UUID,
) (*model.GymRelationship, error) {
	rel, err := s.ownedMembership(ctx, userID, membershipID)
	if err != nil {
		return nil, err
	}
	if !rel.IsActive {
		return rel, nil
	}
	rel.IsActive = false
	if err := s.memberRepo.Update(ctx, rel); err != nil {
		return nil, fmt.Errorf("failed to deactivate membership: %w", err)
	}
	return rel, nil
}

func (s *membershipService) ListMemberships(ctx context.Context, userID uuid.UUID) ([]model.GymRelationship, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	rels, err := s.memberRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	if rels == nil {
		rels = []model.GymRelationship{}
	}
	return rels, nil
}

func (s *membershipService) AssignCoach(
	ctx context.Context, athleteID, coachID, gymID uuid.UUID,
) (*model.CoachRelationship, error) {
	if athleteID == coachID {
		return nil, invalid("coach_id", "athlete and coach must be different users")
	}
	athlete, err := activeUser(ctx, s.userRepo, athleteID)
	if err != nil {
		return nil, err
	}
	coach, err := activeUser(ctx, s.userRepo, coachID)
	if err != nil {
		return nil, err
	}
	if err := s.requireGym(ctx, gymID); err != nil {
		return nil, err
	}
	if !coach.IsCoach {
		return nil, invalid("coach_id", "user does not hold the coach role")
	}

	errs := fieldErrors{}
	ok, err := s.confirmedMember(ctx, coach, gymID, model.GymRoleCoach)
	if err != nil {
		return nil, err
	}
	if !ok {
		errs.add("coach_id", "coach is not an approved member of this gym")
	}
	ok, err = s.confirmedMember(ctx, athlete, gymID, model.GymRoleAthlete)
	if err != nil {
		return nil, err
	}
	if !ok {
		errs.add("athlete_id", "athlete is not an approved member of this gym")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	existing, err := s.coachRepo.Find(ctx, athleteID, coachID, gymID)
	switch {
	case err == nil:
		if existing.IsActive {
			return nil, ErrCoachingExists
		}
		existing.IsActive = true
		if err := s.coachRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to reactivate coaching: %w", err)
		}
		return existing, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("failed to find coaching: %w", err)
	}

	rel := &model.CoachRelationship{
		AthleteID: athleteID,
		CoachID:   coachID,
		GymID:     gymID,
		IsActive:  true,
	}
	if err := s.coachRepo.Create(ctx, rel); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCoachingExists
		}
		return nil, fmt.Errorf("failed to create coaching: %w", err)
	}
	s.log.Info("coach assigned",
		zap.String("athlete_id", athleteID.String()),
		zap.String("coach_id", coachID.String()),
		zap.String("gym_id", gymID.String()),
	)
	return rel, nil
}

func (s *membershipService) EndCoaching(
	ctx context.Context, athleteID, relationshipID uuid.UUID,
) (*model.CoachRelationship, error) {
	rel, err := s.coachRepo.GetByID(ctx, relationshipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRelationshipNotFound
		}
		return nil, fmt.Errorf("failed to find coaching: %w", err)
	}
	if rel.AthleteID != athleteID {
		return nil, ErrRelationshipNotFound
	}
	if !rel.IsActive {
		return rel, nil
	}
	rel.IsActive = false
	if err := s.coachRepo.Update(ctx, rel); err != nil {
		return nil, fmt.Errorf("failed to end coaching: %w", err)
	}
	return rel, nil
}

func (s *membershipService) ListCoaches(ctx context.Context, athleteID uuid.UUID) ([]model.CoachRelationship, error) {
	if err := s.requireUser(ctx, athleteID); err != nil {
		return nil, err
	}
	rels, err := s.coachRepo.ListActiveByAthlete(ctx, athleteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list coaches: %w", err)
	}
	if rels == nil {
		rels = []model.CoachRelationship{}
	}
	return rels, nil
}

func (s *membershipService) ListAthletes(ctx context.Context, coachID uuid.UUID) ([]model.CoachRelationship, error) {
	if err := s.requireUser(ctx, coachID); err != nil {
		return nil, err
	}
	rels, err := s.coachRepo.ListActiveByCoach(ctx, coachID)
	if err != nil {
		return nil, fmt.Errorf("failed to list athletes: %w", err)
	}
	if rels == nil {
		rels = []model.CoachRelationship{}
	}
	return rels, nil
}

func (s *membershipService) requireUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	return nil
}

func (s *membershipService) requireGym(ctx context.Context, id uuid.UUID) error {
	if _, err := s.gymRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGymNotFound
		}
		return fmt.Errorf("failed to find gym: %w", err)
	}
	return nil
}

// ownedMembership hides memberships that belong to another user.
func (s *membershipService) ownedMembership(ctx context.Context, userID, membershipID uuid.UUID) (*model.GymRelationship, error) {
	rel, err := s.memberRepo.GetByID(ctx, membershipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMembershipNotFound
		}
		return nil, fmt.Errorf("failed to find membership: %w", err)
	}
	if rel.UserID != userID {
		return nil, ErrMembershipNotFound
	}
	return rel, nil
}

func (s *membershipService) confirmedMember(ctx context.Context, user *model.User, gymID uuid.UUID, role model.GymRole) (bool, error) {
	if !user.HasRole(role.UserRole()) {
		return false, nil
	}
	rel, err := s.memberRepo.Find(ctx, user.ID, gymID, role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to find membership: %w", err)
	}
	return rel.Confirmed(), nil
}

var _ MembershipService = (*membershipService)(nil)
