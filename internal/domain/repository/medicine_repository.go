package repository

import (
	"context"

	"clinic-backend/internal/domain/entity"

	"github.com/google/uuid"
)

type MedicineRepository interface {
	Create(ctx context.Context, medicine *entity.Medicine) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Medicine, error)
	FindAllActive(ctx context.Context) ([]entity.Medicine, error)
	FindAll(ctx context.Context) ([]entity.Medicine, error)
	Update(ctx context.Context, medicine *entity.Medicine) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)

	// DecrementStock atomically reduces stock by quantity only when enough
	// stock remains. Returns false when the conditional update matched no row.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (bool, error)

	// RestoreStock adds quantity back; used to compensate a failed order.
	RestoreStock(ctx context.Context, id uuid.UUID, quantity int) error
}

type OrderRepository interface {
	// Create inserts the order together with its items.
	Create(ctx context.Context, order *entity.Order) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Order, error)
	FindAll(ctx context.Context) ([]entity.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error
	Count(ctx context.Context) (int64, error)
}
