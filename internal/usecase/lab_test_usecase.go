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
	ErrLabTestNotFound      = errors.New("lab test not found")
	ErrLabBookingNotFound   = errors.New("lab booking not found")
	ErrNotYourLabBooking    = errors.New("lab booking does not belong to you")
	ErrLabTestNameTaken     = errors.New("lab test name already exists")
	ErrLabBookingFinalized  = errors.New("lab booking already completed or cancelled")
	ErrInvalidBookingStatus = errors.New("unknown lab booking status")
)

type LabTestUsecase interface {
	CreateLabTest(ctx context.Context, actorID uuid.UUID, req *dto.CreateLabTestRequest) (*dto.LabTestResponse, error)
	UpdateLabTest(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.UpdateLabTestRequest) (*dto.LabTestResponse, error)
	DeleteLabTest(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error
	ListLabTests(ctx context.Context, includeInactive bool) (*dto.LabTestListResponse, error)

	BookLabTest(ctx context.Context, patientID uuid.UUID, req *dto.BookLabTestRequest) (*dto.LabBookingResponse, error)
	GetMyLabBookings(ctx context.Context, patientID uuid.UUID) (*dto.LabBookingListResponse, error)
	ListAllLabBookings(ctx context.Context) (*dto.LabBookingListResponse, error)
	UpdateLabBookingStatus(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.UpdateLabBookingStatusRequest) (*dto.LabBookingResponse, error)
}

type labTestUsecase struct {
	log         *logrus.Logger
	labTestRepo repository.LabTestRepository
	bookingRepo repository.LabTestBookingRepository
	audit       service.AuditRecorder
}

func NewLabTestUsecase(
	log *logrus.Logger,
	labTestRepo repository.LabTestRepository,
	bookingRepo repository.LabTestBookingRepository,
	audit service.AuditRecorder,
) LabTestUsecase {
	return &labTestUsecase{
		log:         log,
		labTestRepo: labTestRepo,
		bookingRepo: bookingRepo,
		audit:       audit,
	}
}

func (u *labTestUsecase) CreateLabTest(ctx context.Context, actorID uuid.UUID, req *dto.CreateLabTestRequest) (*dto.LabTestResponse, error) {
	if !req.Price.IsPositive() {
		return nil, ErrInvalidPrice
	}

	test := &entity.LabTest{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		IsActive:    true,
	}

	if err := u.labTestRepo.Create(ctx, test); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrLabTestNameTaken
		}
		u.log.Warnf("Failed to create lab test: %+v", err)
		return nil, err
	}

	u.audit.Record(ctx, &actorID, entity.AuditActionCatalogChange, entity.JSON{
		"kind":        "lab_test",
		"op":          "create",
		"lab_test_id": test.ID.String(),
	})
	return converter.LabTestToResponse(test), nil
}

func (u *labTestUsecase) UpdateLabTest(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.UpdateLabTestRequest) (*dto.LabTestResponse, error) {
	test, err := u.labTestRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find lab test %s: %+v", id, err)
		return nil, err
	}
	if test == nil {
		return nil, ErrLabTestNotFound
	}

	if req.Name != "" {
		test.Name = req.Name
	}
	if req.Description != nil {
		test.Description = *req.Description
	}
	if req.Price != nil {
		if !req.Price.IsPositive() {
			return nil, ErrInvalidPrice
		}
		test.Price = *req.Price
	}
	if req.IsActive != nil {
		test.IsActive = *req.IsActive
	}

	if err := u.labTestRepo.Update(ctx, test); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrLabTestNameTaken
		}
		u.log.Warnf("Failed to update lab test %s: %+v", id, err)
		return nil, err
	}

	u.audit.Record(ctx, &actorID, entity.AuditActionCatalogChange, entity.JSON{
		"kind":        "lab_test",
		"op":          "update",
		"lab_test_id": id.String(),
	})
	return converter.LabTestToResponse(test), nil
}

func (u *labTestUsecase) DeleteLabTest(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error {
	rows, err := u.labTestRepo.Delete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to delete lab test %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrLabTestNotFound
	}

	u.audit.Record(ctx, &actorID, entity.AuditActionCatalogChange, entity.JSON{
		"kind":        "lab_test",
		"op":          "delete",
		"lab_test_id": id.String(),
	})
	return nil
}

func (u *labTestUsecase) ListLabTests(ctx context.Context, includeInactive bool) (*dto.LabTestListResponse, error) {
	var (
		tests []entity.LabTest
		err   error
	)
	if includeInactive {
		tests, err = u.labTestRepo.FindAll(ctx)
	} else {
		tests, err = u.labTestRepo.FindAllActive(ctx)
	}
	if err != nil {
		u.log.Warnf("Failed to list lab tests: %+v", err)
		return nil, err
	}

	return &dto.LabTestListResponse{
		LabTests: converter.LabTestsToResponses(tests),
		Total:    len(tests),
	}, nil
}

// BookLabTest books one diagnostic test for the patient; the price is copied
// from the catalog so later price edits do not change what was agreed.
func (u *labTestUsecase) BookLabTest(ctx context.Context, patientID uuid.UUID, req *dto.BookLabTestRequest) (*dto.LabBookingResponse, error) {
	day, err := parseDateOnly(req.ScheduledDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if day.Before(today()) {
		return nil, ErrPastDate
	}

	test, err := u.labTestRepo.FindByID(ctx, req.LabTestID)
	if err != nil {
		u.log.Warnf("Failed to find lab test %s: %+v", req.LabTestID, err)
		return nil, err
	}
	if test == nil || !test.IsActive {
		return nil, ErrLabTestNotFound
	}

	booking := &entity.LabTestBooking{
		PatientID:     patientID,
		LabTestID:     test.ID,
		ScheduledDate: day,
		Status:        entity.LabBookingStatusPending,
		PaymentMethod: req.PaymentMethod,
		Price:         test.Price,
	}

	if err := u.bookingRepo.Create(ctx, booking); err != nil {
		u.log.Warnf("Failed to create lab booking: %+v", err)
		return nil, err
	}
	booking.LabTest = *test

	u.audit.Record(ctx, &patientID, entity.AuditActionLabBookingCreate, entity.JSON{
		"lab_booking_id": booking.ID.String(),
		"lab_test_id":    test.ID.String(),
		"date":           day.Format("2006-01-02"),
	})
	return converter.LabBookingToResponse(booking), nil
}

func (u *labTestUsecase) GetMyLabBookings(ctx context.Context, patientID uuid.UUID) (*dto.LabBookingListResponse, error) {
	bookings, err := u.bookingRepo.FindByPatientID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to list lab bookings for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.LabBookingListResponse{
		Bookings: converter.LabBookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

func (u *labTestUsecase) ListAllLabBookings(ctx context.Context) (*dto.LabBookingListResponse, error) {
	bookings, err := u.bookingRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list lab bookings: %+v", err)
		return nil, err
	}

	return &dto.LabBookingListResponse{
		Bookings: converter.LabBookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

func (u *labTestUsecase) UpdateLabBookingStatus(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.UpdateLabBookingStatusRequest) (*dto.LabBookingResponse, error) {
	if !entity.IsValidLabBookingStatus(req.Status) {
		return nil, ErrInvalidBookingStatus
	}
	next := entity.LabBookingStatus(req.Status)

	booking, err := u.bookingRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find lab booking %s: %+v", id, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrLabBookingNotFound
	}
	if booking.Status != entity.LabBookingStatusPending {
		return nil, ErrLabBookingFinalized
	}

	if err := u.bookingRepo.UpdateStatus(ctx, id, next); err != nil {
		u.log.Warnf("Failed to update lab booking %s to %s: %+v", id, next, err)
		return nil, err
	}

	u.audit.Record(ctx, &actorID, entity.AuditActionLabBookingStatus, entity.JSON{
		"lab_booking_id": id.String(),
		"from":           string(booking.Status),
		"to":             string(next),
	})

	booking.Status = next
	return converter.LabBookingToResponse(booking), nil
}
