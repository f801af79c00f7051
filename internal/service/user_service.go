package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"aiptrack/backend/internal/model"
	"aiptrack/backend/internal/repository"
	"aiptrack/backend/pkg/crypto"
)

var validate = validator.New()

type CreateUserInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UpdateUserInput is decoded straight from the request body; only keys
// present in the payload are written.
type UpdateUserInput struct {
	FirstName       Optional[string]     `json:"first_name"`
	LastName        Optional[string]     `json:"last_name"`
	Email           Optional[string]     `json:"email"`
	NickName        Optional[string]     `json:"nick_name"`
	DateOfBirth     Optional[model.Date] `json:"date_of_birth"`
	Sex             Optional[model.Sex]  `json:"sex"`
	Height          Optional[float64]    `json:"height"`
	Weight          Optional[float64]    `json:"weight"`
	ProfileImageURL Optional[string]     `json:"profile_image_url"`
	LastTested      Optional[model.Date] `json:"last_tested"`
}

type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	Create(ctx context.Context, in CreateUserInput) (*model.User, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateUserInput) (*model.User, error)
	Archive(ctx context.Context, id uuid.UUID) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	userRepo   repository.UserRepository
	bcryptCost int
	log        *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, bcryptCost int, log *zap.Logger) UserService {
	if log == nil {
		log = zap.NewNop()
	}
	return &userService{userRepo: userRepo, bcryptCost: bcryptCost, log: log}
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

// Get returns archived users too; only the auth flows hide them.
func (s *userService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// Create is the administrative path. Unlike Register it leaves every role
// flag false.
func (s *userService) Create(ctx context.Context, in CreateUserInput) (*model.User, error) {
	hash, err := crypto.HashPassword(in.Password, s.bcryptCost)
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
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, in UpdateUserInput) (*model.User, error) {
	fields, err := in.columns()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return s.Get(ctx, id)
	}

	if err := s.userRepo.UpdateFields(ctx, id, fields); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *userService) Archive(ctx context.Context, id uuid.UUID) (*model.User, error) {
	err := s.userRepo.UpdateFields(ctx, id, map[string]interface{}{"status": model.AccountStatusArchived})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to archive user: %w", err)
	}
	s.log.Info("user archived", zap.String("user_id", id.String()))
	return s.Get(ctx, id)
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.log.Info("user deleted", zap.String("user_id", id.String()))
	return nil
}

// columns validates the payload and maps it onto users columns.
func (in UpdateUserInput) columns() (map[string]interface{}, error) {
	errs := fieldErrors{}
	fields := map[string]interface{}{}

	requiredName := func(key string, o Optional[string]) {
		if !o.Set {
			return
		}
		n := utf8.RuneCountInString(o.Value)
		if o.Null || n == 0 {
			errs.add(key, "is required")
			return
		}
		if n > 100 {
			errs.add(key, "must be at most 100 characters")
			return
		}
		fields[key] = o.Value
	}
	requiredName("first_name", in.FirstName)
	requiredName("last_name", in.LastName)

	if in.Email.Set {
		if in.Email.Null || validate.Var(in.Email.Value, "required,email,max=255") != nil {
			errs.add("email", "must be a valid email address")
		} else {
			fields["email"] = in.Email.Value
		}
	}

	if in.NickName.Set {
		if utf8.RuneCountInString(in.NickName.Value) > 100 {
			errs.add("nick_name", "must be at most 100 characters")
		} else {
			fields["nick_name"] = in.NickName.ptr()
		}
	}

	if in.Sex.Set {
		switch {
		case in.Sex.Null:
			fields["sex"] = (*model.Sex)(nil)
		case in.Sex.Value == model.SexMale || in.Sex.Value == model.SexFemale || in.Sex.Value == model.SexOther:
			fields["sex"] = in.Sex.ptr()
		default:
			errs.add("sex", "must be one of: M F Other")
		}
	}

	measure := func(key string, o Optional[float64], limit float64) {
		if !o.Set {
			return
		}
		if !o.Null && (o.Value < 0 || o.Value > limit) {
			errs.add(key, fmt.Sprintf("must be between 0 and %g", limit))
			return
		}
		fields[key] = o.ptr()
	}
	measure("height", in.Height, 99.999)
	measure("weight", in.Weight, 9999.99)

	if in.ProfileImageURL.Set {
		if !in.ProfileImageURL.Null && validate.Var(in.ProfileImageURL.Value, "url,max=500") != nil {
			errs.add("profile_image_url", "must be a valid URL")
		} else {
			fields["profile_image_url"] = in.ProfileImageURL.ptr()
		}
	}

	if in.DateOfBirth.Set {
		fields["date_of_birth"] = in.DateOfBirth.ptr()
	}
	if in.LastTested.Set {
		fields["last_tested"] = in.LastTested.ptr()
	}

	if err := errs.err(); err != nil {
		return nil, err
	}
	return fields, nil
}

var _ UserService = (*userService)(nil)
