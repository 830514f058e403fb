package repository

import (
	"context"

	"clinic-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorProfileRepository interface {
	WithTx(tx *gorm.DB) DoctorProfileRepository

	Create(ctx context.Context, profile *entity.DoctorProfile) error

	// FindByUserID returns the profile with the user record preloaded, or nil
	// when absent.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error)

	// FindAllActive lists profiles of doctors whose user account is active.
	FindAllActive(ctx context.Context) ([]entity.DoctorProfile, error)

	Update(ctx context.Context, profile *entity.DoctorProfile) error
}

type PatientProfileRepository interface {
	WithTx(tx *gorm.DB) PatientProfileRepository

	Create(ctx context.Context, profile *entity.PatientProfile) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.PatientProfile, error)
	FindAll(ctx context.Context) ([]entity.PatientProfile, error)
	Update(ctx context.Context, profile *entity.PatientProfile) error
}
