package repository

import (
	"context"
	"errors"

	"clinic-backend/internal/domain/entity"
	domainRepo "clinic-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type labTestRepository struct {
	db *gorm.DB
}

func NewLabTestRepository(db *gorm.DB) domainRepo.LabTestRepository {
	return &labTestRepository{db: db}
}

func (r *labTestRepository) Create(ctx context.Context, test *entity.LabTest) error {
	return r.db.WithContext(ctx).Create(test).Error
}

func (r *labTestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.LabTest, error) {
	var test entity.LabTest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&test).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &test, nil
}

func (r *labTestRepository) FindAllActive(ctx context.Context) ([]entity.LabTest, error) {
	var tests []entity.LabTest
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&tests).Error
	if err != nil {
		return nil, err
	}
	return tests, nil
}

func (r *labTestRepository) FindAll(ctx context.Context) ([]entity.LabTest, error) {
	var tests []entity.LabTest
	err := r.db.WithContext(ctx).Order("name ASC").Find(&tests).Error
	if err != nil {
		return nil, err
	}
	return tests, nil
}

func (r *labTestRepository) Update(ctx context.Context, test *entity.LabTest) error {
	return r.db.WithContext(ctx).Save(test).Error
}

func (r *labTestRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.LabTest{})
	return result.RowsAffected, result.Error
}

type labTestBookingRepository struct {
	db *gorm.DB
}

func NewLabTestBookingRepository(db *gorm.DB) domainRepo.LabTestBookingRepository {
	return &labTestBookingRepository{db: db}
}

func (r *labTestBookingRepository) Create(ctx context.Context, booking *entity.LabTestBooking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *labTestBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.LabTestBooking, error) {
	var booking entity.LabTestBooking
	err := r.db.WithContext(ctx).
		Preload("LabTest").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *labTestBookingRepository) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.LabTestBooking, error) {
	var bookings []entity.LabTestBooking
	err := r.db.WithContext(ctx).
		Preload("LabTest").
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *labTestBookingRepository) FindAll(ctx context.Context) ([]entity.LabTestBooking, error) {
	var bookings []entity.LabTestBooking
	err := r.db.WithContext(ctx).
		Preload("LabTest").
		Preload("Patient.User").
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *labTestBookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.LabBookingStatus) error {
	return r.db.WithContext(ctx).
		Model(&entity.LabTestBooking{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *labTestBookingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.LabTestBooking{}).Count(&count).Error
	return count, err
}
