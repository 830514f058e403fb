package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/delivery/http/middleware"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/usecase"
	"clinic-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// stubAppointmentUsecase fails every operation with a fixed error.
type stubAppointmentUsecase struct {
	err error
}

func (s *stubAppointmentUsecase) ListAvailableSlots(context.Context, uuid.UUID, string) (*dto.AvailableSlotsResponse, error) {
	return nil, s.err
}

func (s *stubAppointmentUsecase) BookAppointment(context.Context, uuid.UUID, *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	return nil, s.err
}

func (s *stubAppointmentUsecase) GetAppointment(context.Context, uuid.UUID, int, uuid.UUID) (*dto.AppointmentResponse, error) {
	return nil, s.err
}

func (s *stubAppointmentUsecase) ListMyAppointments(context.Context, uuid.UUID, int) (*dto.AppointmentListResponse, error) {
	return nil, s.err
}

func (s *stubAppointmentUsecase) CancelAppointment(context.Context, uuid.UUID, int, uuid.UUID) error {
	return s.err
}

func (s *stubAppointmentUsecase) UpdateStatus(context.Context, uuid.UUID, int, uuid.UUID, *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	return nil, s.err
}

func authenticatedRequest(method, target string, body []byte, roleID int) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, uuid.New())
	ctx = context.WithValue(ctx, middleware.RoleIDKey, roleID)
	return req.WithContext(ctx)
}

// Each error kind must keep its own status code: bad input is 400, missing is
// 404, someone else's appointment is 403, a lost race is 409. Clients branch
// on these.
func TestWriteAppointmentErrorStatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", usecase.ErrAppointmentNotFound, http.StatusNotFound},
		{"not owner", usecase.ErrNotYourAppointment, http.StatusForbidden},
		{"unknown status", usecase.ErrInvalidStatus, http.StatusBadRequest},
		{"illegal transition", usecase.ErrInvalidStatusTransition, http.StatusBadRequest},
		{"unexpected", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeAppointmentError(rec, tc.err, "fallback")
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestUpdateStatusIllegalTransitionIsBadRequest(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentUsecase{err: usecase.ErrInvalidStatusTransition}, validator.NewValidator())

	req := authenticatedRequest(http.MethodPatch, "/api/v1/appointments/"+uuid.NewString()+"/status", []byte(`{"status":"completed"}`), entity.RoleIDDoctor)
	req = mux.SetURLVars(req, map[string]string{"id": uuid.NewString()})
	rec := httptest.NewRecorder()

	h.UpdateStatus(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCancelTerminalAppointmentIsBadRequest(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentUsecase{err: usecase.ErrInvalidStatusTransition}, validator.NewValidator())

	req := authenticatedRequest(http.MethodPost, "/api/v1/appointments/"+uuid.NewString()+"/cancel", nil, entity.RoleIDPatient)
	req = mux.SetURLVars(req, map[string]string{"id": uuid.NewString()})
	rec := httptest.NewRecorder()

	h.CancelAppointment(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestBookAppointmentErrorStatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"slot taken", usecase.ErrSlotTaken, http.StatusConflict},
		{"slot not offered", usecase.ErrSlotNotOffered, http.StatusBadRequest},
		{"past date", usecase.ErrPastDate, http.StatusBadRequest},
		{"doctor missing", usecase.ErrDoctorNotFound, http.StatusNotFound},
	}

	body := []byte(`{"doctor_id":"` + uuid.NewString() + `","appointment_date":"2026-08-31","time_slot":"09:00"}`)

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewAppointmentHandler(&stubAppointmentUsecase{err: tc.err}, validator.NewValidator())

			req := authenticatedRequest(http.MethodPost, "/api/v1/appointments", body, entity.RoleIDPatient)
			rec := httptest.NewRecorder()

			h.BookAppointment(rec, req)

			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}
