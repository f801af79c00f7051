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
	"aiptrack/backend/pkg/crypto"
	jwtpkg "aiptrack/backend/pkg/jwt"
)

// AuthResult is returned by register and login.
type AuthResult struct {
	AccessToken string      `json:"access_token"`
	User        *model.User `json:"user"`
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	IsAthlete bool
	IsCoach   bool
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	CurrentUser(ctx context.Context, userID uuid.UUID) (*model.User, error)
	Refresh(ctx context.Context, userID uuid.UUID) (string, error)
	Logout(ctx context.Context, claims *jwtpkg.Claims) error
}

type AuthOptions struct {
	BcryptCost     int
	RevokeOnLogout bool
}

type authService struct {
	userRepo   repository.UserRepository
	jwtManager *jwtpkg.Manager
	revoker    TokenRevoker
	opts       AuthOptions
	log        *zap.Logger
}

// NewAuthService wires the auth flows. revoker may be nil when logout is stateless.
func NewAuthService(
	userRepo repository.UserRepository,
	jwtManager *jwtpkg.Manager,
	revoker TokenRevoker,
	opts AuthOptions,
	log *zap.Logger,
) AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &authService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		revoker:    revoker,
		opts:       opts,
		log:        log,
	}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	// Archived accounts keep their address.
	_, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := crypto.HashPassword(in.Password, s.opts.BcryptCost)
	if err != nil {
		if errors.Is(err, crypto.ErrPasswordTooLong) {
			return nil, invalid("password", "must be at most 72 bytes")
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:        in.Email,
		PasswordHash: &hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Status:       model.AccountStatusActive,
		IsAthlete:    in.IsAthlete,
		IsCoach:      in.IsCoach,
	}
	if !user.IsAthlete && !user.IsCoach {
		user.IsAthlete = true
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	s.log.Info("user registered", zap.String("user_id", user.ID.String()))

	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	// Federated-only accounts have no hash and cannot use the password flow.
	if user.PasswordHash == nil || !crypto.CheckPassword(password, *user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

func (s *authService) CurrentUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return activeUser(ctx, s.userRepo, userID)
}

func (s *authService) Refresh(ctx context.Context, userID uuid.UUID) (string, error) {
	user, err := activeUser(ctx, s.userRepo, userID)
	if err != nil {
		return "", err
	}
	token, _, err := s.jwtManager.GenerateAccessToken(user.ID, user.Roles())
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

func (s *authService) Logout(ctx context.Context, claims *jwtpkg.Claims) error {
	if !s.opts.RevokeOnLogout || s.revoker == nil || claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	if err := s.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *authService) issue(user *model.User) (*AuthResult, error) {
	token, _, err := s.jwtManager.GenerateAccessToken(user.ID, user.Roles())
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &AuthResult{AccessToken: token, User: user}, nil
}

// activeUser treats archived accounts as absent.
func activeUser(ctx context.Context, repo repository.UserRepository, id uuid.UUID) (*model.User, error) {
	user, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user.IsArchived() {
		return nil, ErrUserNotFound
	}
	return user, nil
}

var _ AuthService = (*authService)(nil)
