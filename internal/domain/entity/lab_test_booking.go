package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LabBookingStatus represents the status of a lab test booking
type LabBookingStatus string

const (
	LabBookingStatusPending   LabBookingStatus = "pending"
	LabBookingStatusCompleted LabBookingStatus = "completed"
	LabBookingStatusCancelled LabBookingStatus = "cancelled"
)

// IsValidLabBookingStatus reports whether s names a known booking status.
func IsValidLabBookingStatus(s string) bool {
	switch LabBookingStatus(s) {
	case LabBookingStatusPending, LabBookingStatusCompleted, LabBookingStatusCancelled:
		return true
	}
	return false
}

// LabTestBooking is a patient's booking of one lab test on a date. Price is
// copied from the catalog at booking time.
type LabTestBooking struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"patient_id"`
	LabTestID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"lab_test_id"`
	ScheduledDate time.Time        `gorm:"type:date;not null" json:"scheduled_date"`
	Status        LabBookingStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaymentMethod string           `gorm:"type:varchar(10);not null" json:"payment_method"`
	Price         decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt     time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	LabTest LabTest        `gorm:"foreignKey:LabTestID" json:"lab_test,omitempty"`
}

func (LabTestBooking) TableName() string {
	return "lab_test_bookings"
}
