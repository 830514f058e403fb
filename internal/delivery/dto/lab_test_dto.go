package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateLabTestRequest struct {
	Name        string          `json:"name" validate:"required,max=255"`
	Description string          `json:"description" validate:"omitempty,max=2000"`
	Price       decimal.Decimal `json:"price" validate:"required"`
}

type UpdateLabTestRequest struct {
	Name        string           `json:"name" validate:"omitempty,max=255"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	IsActive    *bool            `json:"is_active"`
}

type BookLabTestRequest struct {
	LabTestID     uuid.UUID `json:"lab_test_id" validate:"required"`
	ScheduledDate string    `json:"scheduled_date" validate:"required,dateonly"` // Format: YYYY-MM-DD
	PaymentMethod string    `json:"payment_method" validate:"required,oneof=cash card upi"`
}

type UpdateLabBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending completed cancelled"`
}

// Response DTOs

type LabTestResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type LabTestListResponse struct {
	LabTests []LabTestResponse `json:"lab_tests"`
	Total    int               `json:"total"`
}

type LabBookingResponse struct {
	ID            uuid.UUID        `json:"id"`
	PatientID     uuid.UUID        `json:"patient_id"`
	LabTest       *LabTestResponse `json:"lab_test,omitempty"`
	ScheduledDate string           `json:"scheduled_date"`
	Status        string           `json:"status"`
	PaymentMethod string           `json:"payment_method"`
	Price         decimal.Decimal  `json:"price"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

type LabBookingListResponse struct {
	Bookings []LabBookingResponse `json:"bookings"`
	Total    int                  `json:"total"`
}
