package repository

import (
	"context"

	"clinic-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	// WithTx returns a copy of the repository bound to the given transaction,
	// for flows that create a user and a profile atomically.
	WithTx(tx *gorm.DB) UserRepository

	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByRoleID(ctx context.Context, roleID int) ([]entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	CountByRoleID(ctx context.Context, roleID int) (int64, error)
}

type RoleRepository interface {
	FindByID(ctx context.Context, id int) (*entity.Role, error)
	FindAll(ctx context.Context) ([]entity.Role, error)
}
