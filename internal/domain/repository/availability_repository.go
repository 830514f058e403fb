package repository

import (
	"context"

	"clinic-backend/internal/domain/entity"

	"github.com/google/uuid"
)

type AvailabilityRepository interface {
	FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.AvailabilityEntry, error)

	// ReplaceForDoctor atomically swaps the doctor's weekly schedule for the
	// given entries.
	ReplaceForDoctor(ctx context.Context, doctorID uuid.UUID, entries []entity.AvailabilityEntry) error
}
