package entity

import "github.com/google/uuid"

// DoctorProfile represents doctor-specific profile data
type DoctorProfile struct {
	UserID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	LicenseNumber   string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"license_number"`
	Specialization  string    `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Qualification   string    `gorm:"type:varchar(255)" json:"qualification,omitempty"`
	ExperienceYears int       `gorm:"not null;default:0" json:"experience_years"`
	Biography       string    `gorm:"type:text" json:"biography,omitempty"`

	// Relationships
	User         User                `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Availability []AvailabilityEntry `gorm:"foreignKey:DoctorID" json:"availability,omitempty"`
	Appointments []Appointment       `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}
