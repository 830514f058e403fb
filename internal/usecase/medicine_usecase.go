package usecase

import (
	"context"
	"errors"

	"clinic-backend/internal/converter"
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/domain/repository"
	"clinic-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrMedicineNotFound = errors.New("medicine not found")
	ErrInvalidPrice     = errors.New("price must be positive")
)

type MedicineUsecase interface {
	CreateMedicine(ctx context.Context, actorID uuid.UUID, req *dto.CreateMedicineRequest) (*dto.MedicineResponse, error)
	UpdateMedicine(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.UpdateMedicineRequest) (*dto.MedicineResponse, error)
	DeleteMedicine(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error
	GetMedicine(ctx context.Context, id uuid.UUID) (*dto.MedicineResponse, error)

	// ListMedicines returns the full catalog when includeInactive is set,
	// otherwise only active items.
	ListMedicines(ctx context.Context, includeInactive bool) (*dto.MedicineListResponse, error)
}

type medicineUsecase struct {
	log          *logrus.Logger
	medicineRepo repository.MedicineRepository
	audit        service.AuditRecorder
}

func NewMedicineUsecase(
	log *logrus.Logger,
	medicineRepo repository.MedicineRepository,
	audit service.AuditRecorder,
) MedicineUsecase {
	return &medicineUsecase{
		log:          log,
		medicineRepo: medicineRepo,
		audit:        audit,
	}
}

func (u *medicineUsecase) CreateMedicine(ctx context.Context, actorID uuid.UUID, req *dto.CreateMedicineRequest) (*dto.MedicineResponse, error) {
	if !req.Price.IsPositive() {
		return nil, ErrInvalidPrice
	}

	expiry, err := parseDateOnly(req.ExpiryDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	medicine := &entity.Medicine{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Stock:        req.Stock,
		Category:     req.Category,
		Manufacturer: req.Manufacturer,
		ExpiryDate:   expiry,
		IsActive:     true,
	}

	if err := u.medicineRepo.Create(ctx, medicine); err != nil {
		u.log.Warnf("Failed to create medicine: %+v", err)
		return nil, err
	}

	u.audit.Record(ctx, &actorID, entity.AuditActionCatalogChange, entity.JSON{
		"kind":        "medicine",
		"op":          "create",
		"medicine_id": medicine.ID.String(),
	})
	return converter.MedicineToResponse(medicine), nil
}

func (u *medicineUsecase) UpdateMedicine(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.UpdateMedicineRequest) (*dto.MedicineResponse, error) {
	medicine, err := u.medicineRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find medicine %s: %+v", id, err)
		return nil, err
	}
	if medicine == nil {
		return nil, ErrMedicineNotFound
	}

	if req.Name != "" {
		medicine.Name = req.Name
	}
	if req.Description != nil {
		medicine.Description = *req.Description
	}
	if req.Price != nil {
		if !req.Price.IsPositive() {
			return nil, ErrInvalidPrice
		}
		medicine.Price = *req.Price
	}
	if req.Stock != nil {
		medicine.Stock = *req.Stock
	}
	if req.Category != "" {
		medicine.Category = req.Category
	}
	if req.Manufacturer != nil {
		medicine.Manufacturer = *req.Manufacturer
	}
	if req.ExpiryDate != "" {
		expiry, err := parseDateOnly(req.ExpiryDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		medicine.ExpiryDate = expiry
	}
	if req.IsActive != nil {
		medicine.IsActive = *req.IsActive
	}

	if err := u.medicineRepo.Update(ctx, medicine); err != nil {
		u.log.Warnf("Failed to update medicine %s: %+v", id, err)
		return nil, err
	}

	u.audit.Record(ctx, &actorID, entity.AuditActionCatalogChange, entity.JSON{
		"kind":        "medicine",
		"op":          "update",
		"medicine_id": id.String(),
	})
	return converter.MedicineToResponse(medicine), nil
}

func (u *medicineUsecase) DeleteMedicine(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error {
	rows, err := u.medicineRepo.Delete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to delete medicine %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrMedicineNotFound
	}

	u.audit.Record(ctx, &actorID, entity.AuditActionCatalogChange, entity.JSON{
		"kind":        "medicine",
		"op":          "delete",
		"medicine_id": id.String(),
	})
	return nil
}

func (u *medicineUsecase) GetMedicine(ctx context.Context, id uuid.UUID) (*dto.MedicineResponse, error) {
	medicine, err := u.medicineRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find medicine %s: %+v", id, err)
		return nil, err
	}
	if medicine == nil {
		return nil, ErrMedicineNotFound
	}
	return converter.MedicineToResponse(medicine), nil
}

func (u *medicineUsecase) ListMedicines(ctx context.Context, includeInactive bool) (*dto.MedicineListResponse, error) {
	var (
		medicines []entity.Medicine
		err       error
	)
	if includeInactive {
		medicines, err = u.medicineRepo.FindAll(ctx)
	} else {
		medicines, err = u.medicineRepo.FindAllActive(ctx)
	}
	if err != nil {
		u.log.Warnf("Failed to list medicines: %+v", err)
		return nil, err
	}

	return &dto.MedicineListResponse{
		Medicines: converter.MedicinesToResponses(medicines),
		Total:     len(medicines),
	}, nil
}
