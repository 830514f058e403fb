package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MedicineCategory values accepted by the catalog
const (
	MedicineCategoryTablet    = "tablet"
	MedicineCategoryCapsule   = "capsule"
	MedicineCategorySyrup     = "syrup"
	MedicineCategoryInjection = "injection"
	MedicineCategoryCream     = "cream"
	MedicineCategoryOther     = "other"
)

// IsValidMedicineCategory reports whether c is a known category.
func IsValidMedicineCategory(c string) bool {
	switch c {
	case MedicineCategoryTablet, MedicineCategoryCapsule, MedicineCategorySyrup,
		MedicineCategoryInjection, MedicineCategoryCream, MedicineCategoryOther:
		return true
	}
	return false
}

// Medicine is one pharmacy catalog item
type Medicine struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string          `gorm:"type:varchar(255);not null;index" json:"name"`
	Description  string          `gorm:"type:text" json:"description,omitempty"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock        int             `gorm:"not null;default:0" json:"stock"`
	Category     string          `gorm:"type:varchar(20);not null" json:"category"`
	Manufacturer string          `gorm:"type:varchar(255)" json:"manufacturer,omitempty"`
	ExpiryDate   time.Time       `gorm:"type:date" json:"expiry_date"`
	IsActive     bool            `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Medicine) TableName() string {
	return "medicines"
}
