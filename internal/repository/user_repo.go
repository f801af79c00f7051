package repository

import (
	"context"

	"github.com/google/uuid"

	"aiptrack/backend/internal/model"
)

// UserRepository returns gorm.ErrRecordNotFound for missing rows and
// gorm.ErrDuplicatedKey when the email index rejects a write.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetActiveByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}
