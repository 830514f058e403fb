package repository

import (
	"context"

	"clinic-backend/internal/domain/entity"

	"github.com/google/uuid"
)

type LabTestRepository interface {
	Create(ctx context.Context, test *entity.LabTest) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.LabTest, error)
	FindAllActive(ctx context.Context) ([]entity.LabTest, error)
	FindAll(ctx context.Context) ([]entity.LabTest, error)
	Update(ctx context.Context, test *entity.LabTest) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type LabTestBookingRepository interface {
	Create(ctx context.Context, booking *entity.LabTestBooking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.LabTestBooking, error)
	FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.LabTestBooking, error)
	FindAll(ctx context.Context) ([]entity.LabTestBooking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.LabBookingStatus) error
	Count(ctx context.Context) (int64, error)
}
