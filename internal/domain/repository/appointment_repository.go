package repository

import (
	"context"
	"time"

	"clinic-backend/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentRepository owns all persistence of appointments. The allocator
// never caches results across calls; every decision re-reads current state.
type AppointmentRepository interface {
	// Create inserts a new appointment. The partial unique index on
	// (doctor_id, appointment_date, time_slot) over active statuses is the
	// authoritative conflict arbiter; callers must map its violation to a
	// conflict result.
	Create(ctx context.Context, appointment *entity.Appointment) error

	// FindByID returns the appointment with doctor and patient display data
	// preloaded, or nil when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)

	FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error)
	FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.Appointment, error)
	FindAll(ctx context.Context) ([]entity.Appointment, error)

	// CountActiveForSlot counts appointments in an active status holding the
	// exact (doctor, date, slot) triple.
	CountActiveForSlot(ctx context.Context, doctorID uuid.UUID, date time.Time, slot string) (int64, error)

	// ListActiveSlotsForDay returns the time slots held by active
	// appointments of one doctor on one date.
	ListActiveSlotsForDay(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]string, error)

	// UpdateStatus persists a status change.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.AppointmentStatus) error

	CountByStatus(ctx context.Context, status entity.AppointmentStatus) (int64, error)
	Count(ctx context.Context) (int64, error)
}
