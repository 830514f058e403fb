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
	ErrInvalidTimeRange  = errors.New("start time must be before end time")
	ErrDuplicateWeekday  = errors.New("duplicate weekday in schedule")
	ErrInvalidTimeFormat = errors.New("invalid time, expected HH:MM")
	ErrInvalidWeekday    = errors.New("unknown weekday")
)

type AvailabilityUsecase interface {
	GetAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityResponse, error)
	ReplaceAvailability(ctx context.Context, doctorID uuid.UUID, req *dto.ReplaceAvailabilityRequest) (*dto.AvailabilityResponse, error)
}

type availabilityUsecase struct {
	log        *logrus.Logger
	availRepo  repository.AvailabilityRepository
	doctorRepo repository.DoctorProfileRepository
	audit      service.AuditRecorder
}

func NewAvailabilityUsecase(
	log *logrus.Logger,
	availRepo repository.AvailabilityRepository,
	doctorRepo repository.DoctorProfileRepository,
	audit service.AuditRecorder,
) AvailabilityUsecase {
	return &availabilityUsecase{
		log:        log,
		availRepo:  availRepo,
		doctorRepo: doctorRepo,
		audit:      audit,
	}
}

func (u *availabilityUsecase) GetAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityResponse, error) {
	doctor, err := u.doctorRepo.FindByUserID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	entries, err := u.availRepo.FindByDoctorID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to load availability for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AvailabilityResponse{
		DoctorID: doctorID,
		Entries:  converter.AvailabilityToResponse(entries),
	}, nil
}

// ReplaceAvailability swaps the doctor's whole weekly schedule. Existing
// appointments are not touched: slots already booked stay booked even if the
// new schedule no longer offers them.
func (u *availabilityUsecase) ReplaceAvailability(ctx context.Context, doctorID uuid.UUID, req *dto.ReplaceAvailabilityRequest) (*dto.AvailabilityResponse, error) {
	seen := make(map[string]bool, len(req.Entries))
	entries := make([]entity.AvailabilityEntry, 0, len(req.Entries))
	for _, e := range req.Entries {
		if !entity.IsValidWeekday(e.Weekday) {
			return nil, ErrInvalidWeekday
		}
		if seen[e.Weekday] {
			return nil, ErrDuplicateWeekday
		}
		seen[e.Weekday] = true

		start, err := entity.ParseClockTime(e.StartTime)
		if err != nil {
			return nil, ErrInvalidTimeFormat
		}
		end, err := entity.ParseClockTime(e.EndTime)
		if err != nil {
			return nil, ErrInvalidTimeFormat
		}
		if start >= end {
			return nil, ErrInvalidTimeRange
		}

		entries = append(entries, entity.AvailabilityEntry{
			DoctorID:  doctorID,
			Weekday:   e.Weekday,
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
		})
	}

	if err := u.availRepo.ReplaceForDoctor(ctx, doctorID, entries); err != nil {
		u.log.Warnf("Failed to replace availability for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	u.audit.Record(ctx, &doctorID, entity.AuditActionAvailabilityReplace, entity.JSON{
		"entries": len(entries),
	})

	return &dto.AvailabilityResponse{
		DoctorID: doctorID,
		Entries:  converter.AvailabilityToResponse(entries),
	}, nil
}
