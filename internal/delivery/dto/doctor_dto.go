package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type UpdateDoctorProfileRequest struct {
	FullName        string `json:"full_name" validate:"omitempty,min=2,max=255"`
	Specialization  string `json:"specialization" validate:"omitempty,max=100"`
	Qualification   string `json:"qualification" validate:"omitempty,max=255"`
	ExperienceYears *int   `json:"experience_years" validate:"omitempty,gte=0"`
	Biography       string `json:"biography" validate:"omitempty,max=2000"`
}

type AvailabilityEntryRequest struct {
	Weekday   string `json:"weekday" validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	StartTime string `json:"start_time" validate:"required,hhmm"` // Format: HH:MM
	EndTime   string `json:"end_time" validate:"required,hhmm"`   // Format: HH:MM
}

type ReplaceAvailabilityRequest struct {
	Entries []AvailabilityEntryRequest `json:"entries" validate:"required,dive"`
}

// Response DTOs

type DoctorResponse struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	FullName        string    `json:"full_name"`
	LicenseNumber   string    `json:"license_number,omitempty"`
	Specialization  string    `json:"specialization"`
	Qualification   string    `json:"qualification,omitempty"`
	ExperienceYears int       `json:"experience_years"`
	Biography       string    `json:"biography,omitempty"`
	IsActive        bool      `json:"is_active"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

type AvailabilityEntryResponse struct {
	Weekday   string    `json:"weekday"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AvailabilityResponse struct {
	DoctorID uuid.UUID                   `json:"doctor_id"`
	Entries  []AvailabilityEntryResponse `json:"entries"`
}
