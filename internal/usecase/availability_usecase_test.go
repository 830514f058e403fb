package usecase

import (
	"context"
	"errors"
	"testing"

	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/service"

	"github.com/google/uuid"
)

func newAvailabilityFixture() (AvailabilityUsecase, uuid.UUID) {
	doctorID := uuid.New()
	doctors := &fakeDoctorRepo{profiles: map[uuid.UUID]*entity.DoctorProfile{
		doctorID: {UserID: doctorID, Specialization: "dermatology"},
	}}
	avail := &fakeAvailabilityRepo{entries: make(map[uuid.UUID][]entity.AvailabilityEntry)}
	uc := NewAvailabilityUsecase(testLogger(), avail, doctors, service.NopAuditRecorder{})
	return uc, doctorID
}

func TestReplaceAvailability(t *testing.T) {
	uc, doctorID := newAvailabilityFixture()
	ctx := context.Background()

	got, err := uc.ReplaceAvailability(ctx, doctorID, &dto.ReplaceAvailabilityRequest{
		Entries: []dto.AvailabilityEntryRequest{
			{Weekday: "monday", StartTime: "09:00", EndTime: "12:00"},
			{Weekday: "wednesday", StartTime: "14:00", EndTime: "17:30"},
		},
	})
	if err != nil {
		t.Fatalf("ReplaceAvailability() error = %v", err)
	}
	if len(got.Entries) != 2 {
		t.Fatalf("len(Entries) = %d, want 2", len(got.Entries))
	}

	// A later replace fully supersedes the previous schedule.
	got, err = uc.ReplaceAvailability(ctx, doctorID, &dto.ReplaceAvailabilityRequest{
		Entries: []dto.AvailabilityEntryRequest{
			{Weekday: "friday", StartTime: "08:00", EndTime: "10:00"},
		},
	})
	if err != nil {
		t.Fatalf("ReplaceAvailability() error = %v", err)
	}
	if len(got.Entries) != 1 || got.Entries[0].Weekday != "friday" {
		t.Fatalf("Entries = %+v, want single friday entry", got.Entries)
	}
}

func TestReplaceAvailabilityValidation(t *testing.T) {
	uc, doctorID := newAvailabilityFixture()

	tests := []struct {
		name    string
		entries []dto.AvailabilityEntryRequest
		wantErr error
	}{
		{
			"unknown weekday",
			[]dto.AvailabilityEntryRequest{
				{Weekday: "moonday", StartTime: "09:00", EndTime: "12:00"},
			},
			ErrInvalidWeekday,
		},
		{
			"duplicate weekday",
			[]dto.AvailabilityEntryRequest{
				{Weekday: "monday", StartTime: "09:00", EndTime: "12:00"},
				{Weekday: "monday", StartTime: "14:00", EndTime: "17:00"},
			},
			ErrDuplicateWeekday,
		},
		{
			"start after end",
			[]dto.AvailabilityEntryRequest{
				{Weekday: "monday", StartTime: "17:00", EndTime: "09:00"},
			},
			ErrInvalidTimeRange,
		},
		{
			"start equals end",
			[]dto.AvailabilityEntryRequest{
				{Weekday: "monday", StartTime: "09:00", EndTime: "09:00"},
			},
			ErrInvalidTimeRange,
		},
		{
			"bad time",
			[]dto.AvailabilityEntryRequest{
				{Weekday: "monday", StartTime: "9am", EndTime: "12:00"},
			},
			ErrInvalidTimeFormat,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.ReplaceAvailability(context.Background(), doctorID, &dto.ReplaceAvailabilityRequest{Entries: tc.entries})
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestGetAvailabilityUnknownDoctor(t *testing.T) {
	uc, _ := newAvailabilityFixture()

	_, err := uc.GetAvailability(context.Background(), uuid.New())
	if !errors.Is(err, ErrDoctorNotFound) {
		t.Fatalf("error = %v, want ErrDoctorNotFound", err)
	}
}
