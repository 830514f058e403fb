package main

import (
	"fmt"
	"time"

	"clinic-backend/config"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/infrastructure/database"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const seedPassword = "password123"

var specializations = []string{
	"Cardiology",
	"Dermatology",
	"General Practice",
	"Neurology",
	"Orthopedics",
	"Pediatrics",
	"Psychiatry",
}

var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday"}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	if err := database.Migrate(cfg.DB); err != nil {
		logrus.Fatalf("Failed to migrate database: %v", err)
	}

	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		logrus.Fatalf("Failed to hash seed password: %v", err)
	}

	if err := seedAdmin(db, string(hash)); err != nil {
		logrus.Fatalf("Failed to seed admin: %v", err)
	}
	if err := seedDoctors(db, string(hash), 8); err != nil {
		logrus.Fatalf("Failed to seed doctors: %v", err)
	}
	if err := seedPatients(db, string(hash), 40); err != nil {
		logrus.Fatalf("Failed to seed patients: %v", err)
	}
	if err := seedMedicines(db, 30); err != nil {
		logrus.Fatalf("Failed to seed medicines: %v", err)
	}
	if err := seedLabTests(db); err != nil {
		logrus.Fatalf("Failed to seed lab tests: %v", err)
	}

	logrus.Info("Seed complete")
}

func seedAdmin(db *gorm.DB, passwordHash string) error {
	admin := &entity.User{
		RoleID:   entity.RoleIDAdmin,
		Email:    "admin@clinic.local",
		Password: passwordHash,
		FullName: "Clinic Admin",
		IsActive: true,
	}
	return db.Create(admin).Error
}

func seedDoctors(db *gorm.DB, passwordHash string, count int) error {
	logrus.Infof("Seeding %d doctors", count)

	for i := 0; i < count; i++ {
		user := &entity.User{
			RoleID:   entity.RoleIDDoctor,
			Email:    fmt.Sprintf("doctor%d@clinic.local", i+1),
			Password: passwordHash,
			FullName: "Dr. " + gofakeit.Name(),
			IsActive: true,
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(user).Error; err != nil {
				return err
			}

			profile := &entity.DoctorProfile{
				UserID:          user.ID,
				LicenseNumber:   fmt.Sprintf("LIC-%06d", gofakeit.Number(100000, 999999)),
				Specialization:  specializations[gofakeit.Number(0, len(specializations)-1)],
				Qualification:   "MBBS, MD",
				ExperienceYears: gofakeit.Number(1, 30),
				Biography:       gofakeit.Paragraph(1, 3, 12, " "),
			}
			if err := tx.Create(profile).Error; err != nil {
				return err
			}

			// A five day work week with morning and afternoon coverage.
			for _, weekday := range weekdays {
				entry := &entity.AvailabilityEntry{
					DoctorID:  user.ID,
					Weekday:   weekday,
					StartTime: "09:00",
					EndTime:   "17:00",
				}
				if err := tx.Create(entry).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func seedPatients(db *gorm.DB, passwordHash string, count int) error {
	logrus.Infof("Seeding %d patients", count)

	genders := []string{entity.GenderMale, entity.GenderFemale, entity.GenderOther}

	for i := 0; i < count; i++ {
		user := &entity.User{
			RoleID:   entity.RoleIDPatient,
			Email:    fmt.Sprintf("patient%d@clinic.local", i+1),
			Password: passwordHash,
			FullName: gofakeit.Name(),
			IsActive: true,
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(user).Error; err != nil {
				return err
			}

			profile := &entity.PatientProfile{
				UserID:      user.ID,
				PhoneNumber: gofakeit.Phone(),
				DateOfBirth: gofakeit.DateRange(
					time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC),
					time.Date(2007, 12, 31, 0, 0, 0, 0, time.UTC),
				),
				Gender:  genders[gofakeit.Number(0, len(genders)-1)],
				Address: gofakeit.Street() + ", " + gofakeit.City(),
			}
			return tx.Create(profile).Error
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func seedMedicines(db *gorm.DB, count int) error {
	logrus.Infof("Seeding %d medicines", count)

	categories := []string{
		entity.MedicineCategoryTablet,
		entity.MedicineCategoryCapsule,
		entity.MedicineCategorySyrup,
		entity.MedicineCategoryInjection,
		entity.MedicineCategoryCream,
	}

	for i := 0; i < count; i++ {
		medicine := &entity.Medicine{
			Name:         gofakeit.ProductName(),
			Description:  gofakeit.Sentence(8),
			Price:        decimal.NewFromFloat(gofakeit.Price(1, 200)).Round(2),
			Stock:        gofakeit.Number(0, 500),
			Category:     categories[gofakeit.Number(0, len(categories)-1)],
			Manufacturer: gofakeit.Company(),
			ExpiryDate:   gofakeit.DateRange(time.Now().AddDate(0, 6, 0), time.Now().AddDate(3, 0, 0)),
			IsActive:     true,
		}
		if err := db.Create(medicine).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedLabTests(db *gorm.DB) error {
	tests := []entity.LabTest{
		{Name: "Complete Blood Count", Price: decimal.NewFromInt(25)},
		{Name: "Lipid Profile", Price: decimal.NewFromInt(40)},
		{Name: "Thyroid Panel", Price: decimal.NewFromInt(55)},
		{Name: "Liver Function Test", Price: decimal.NewFromInt(45)},
		{Name: "Blood Glucose Fasting", Price: decimal.NewFromInt(15)},
		{Name: "Urine Analysis", Price: decimal.NewFromInt(20)},
	}

	logrus.Infof("Seeding %d lab tests", len(tests))

	for i := range tests {
		tests[i].Description = gofakeit.Sentence(10)
		tests[i].IsActive = true
		if err := db.Create(&tests[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
