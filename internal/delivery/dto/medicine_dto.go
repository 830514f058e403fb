package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateMedicineRequest struct {
	Name         string          `json:"name" validate:"required,max=255"`
	Description  string          `json:"description" validate:"omitempty,max=2000"`
	Price        decimal.Decimal `json:"price" validate:"required"`
	Stock        int             `json:"stock" validate:"gte=0"`
	Category     string          `json:"category" validate:"required,oneof=tablet capsule syrup injection cream other"`
	Manufacturer string          `json:"manufacturer" validate:"omitempty,max=255"`
	ExpiryDate   string          `json:"expiry_date" validate:"required,dateonly"`
}

type UpdateMedicineRequest struct {
	Name         string           `json:"name" validate:"omitempty,max=255"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	Stock        *int             `json:"stock" validate:"omitempty,gte=0"`
	Category     string           `json:"category" validate:"omitempty,oneof=tablet capsule syrup injection cream other"`
	Manufacturer *string          `json:"manufacturer"`
	ExpiryDate   string           `json:"expiry_date" validate:"omitempty,dateonly"`
	IsActive     *bool            `json:"is_active"`
}

type OrderItemRequest struct {
	MedicineID uuid.UUID `json:"medicine_id" validate:"required"`
	Quantity   int       `json:"quantity" validate:"required,min=1"`
}

type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	DeliveryAddress string             `json:"delivery_address" validate:"required,max=1000"`
	PaymentMethod   string             `json:"payment_method" validate:"required,oneof=cash card upi"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing completed cancelled"`
}

// Response DTOs

type MedicineResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	Category     string          `json:"category"`
	Manufacturer string          `json:"manufacturer,omitempty"`
	ExpiryDate   string          `json:"expiry_date,omitempty"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type MedicineListResponse struct {
	Medicines []MedicineResponse `json:"medicines"`
	Total     int                `json:"total"`
}

type OrderItemResponse struct {
	MedicineID uuid.UUID       `json:"medicine_id"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int             `json:"quantity"`
}

type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	PatientID       uuid.UUID           `json:"patient_id"`
	Items           []OrderItemResponse `json:"items"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	Status          string              `json:"status"`
	DeliveryAddress string              `json:"delivery_address,omitempty"`
	PaymentMethod   string              `json:"payment_method"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
}
