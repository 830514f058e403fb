package handler

import (
	"encoding/json"
	"net/http"

	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/delivery/http/middleware"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/usecase"
	"clinic-backend/pkg/response"
	"clinic-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type LabTestHandler struct {
	labTestUsecase usecase.LabTestUsecase
	validator      *validator.CustomValidator
}

func NewLabTestHandler(labTestUsecase usecase.LabTestUsecase, validator *validator.CustomValidator) *LabTestHandler {
	return &LabTestHandler{
		labTestUsecase: labTestUsecase,
		validator:      validator,
	}
}

func (h *LabTestHandler) ListLabTests(w http.ResponseWriter, r *http.Request) {
	includeInactive := false
	if r.URL.Query().Get("include_inactive") == "true" {
		if roleID, ok := middleware.GetRoleIDFromContext(r.Context()); ok && entity.RoleCan(roleID, entity.CapAdminister) {
			includeInactive = true
		}
	}

	tests, err := h.labTestUsecase.ListLabTests(r.Context(), includeInactive)
	if err != nil {
		response.InternalServerError(w, "Failed to get lab tests")
		return
	}

	response.Success(w, http.StatusOK, "Lab tests retrieved successfully", tests)
}

func (h *LabTestHandler) CreateLabTest(w http.ResponseWriter, r *http.Request) {
	actorID, _, ok := actor(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.CreateLabTestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	test, err := h.labTestUsecase.CreateLabTest(r.Context(), actorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrLabTestNameTaken:
			response.Conflict(w, "Lab test name already exists")
		case usecase.ErrInvalidPrice:
			response.BadRequest(w, "Price must be positive")
		default:
			response.InternalServerError(w, "Failed to create lab test")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Lab test created successfully", test)
}

func (h *LabTestHandler) UpdateLabTest(w http.ResponseWriter, r *http.Request) {
	actorID, _, ok := actor(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid lab test ID")
		return
	}

	var req dto.UpdateLabTestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	test, err := h.labTestUsecase.UpdateLabTest(r.Context(), actorID, id, &req)
	if err != nil {
		switch err {
		case usecase.ErrLabTestNotFound:
			response.NotFound(w, "Lab test not found")
		case usecase.ErrLabTestNameTaken:
			response.Conflict(w, "Lab test name already exists")
		case usecase.ErrInvalidPrice:
			response.BadRequest(w, "Price must be positive")
		default:
			response.InternalServerError(w, "Failed to update lab test")
		}
		return
	}

	response.Success(w, http.StatusOK, "Lab test updated successfully", test)
}

func (h *LabTestHandler) DeleteLabTest(w http.ResponseWriter, r *http.Request) {
	actorID, _, ok := actor(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid lab test ID")
		return
	}

	if err := h.labTestUsecase.DeleteLabTest(r.Context(), actorID, id); err != nil {
		switch err {
		case usecase.ErrLabTestNotFound:
			response.NotFound(w, "Lab test not found")
		default:
			response.InternalServerError(w, "Failed to delete lab test")
		}
		return
	}

	response.Success(w, http.StatusOK, "Lab test deleted successfully", nil)
}

func (h *LabTestHandler) BookLabTest(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.BookLabTestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.labTestUsecase.BookLabTest(r.Context(), patientID, &req)
	if err != nil {
		switch err {
		case usecase.ErrLabTestNotFound:
			response.NotFound(w, "Lab test not found")
		case usecase.ErrInvalidDate:
			response.BadRequest(w, "Invalid date, use YYYY-MM-DD")
		case usecase.ErrPastDate:
			response.BadRequest(w, "Cannot book a lab test on a past date")
		default:
			response.InternalServerError(w, "Failed to book lab test")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Lab test booked successfully", booking)
}

func (h *LabTestHandler) GetMyLabBookings(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	bookings, err := h.labTestUsecase.GetMyLabBookings(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to get lab bookings")
		return
	}

	response.Success(w, http.StatusOK, "Lab bookings retrieved successfully", bookings)
}

// ListAllLabBookings is admin only.
func (h *LabTestHandler) ListAllLabBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.labTestUsecase.ListAllLabBookings(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get lab bookings")
		return
	}

	response.Success(w, http.StatusOK, "Lab bookings retrieved successfully", bookings)
}

// UpdateLabBookingStatus is admin only.
func (h *LabTestHandler) UpdateLabBookingStatus(w http.ResponseWriter, r *http.Request) {
	actorID, _, ok := actor(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid lab booking ID")
		return
	}

	var req dto.UpdateLabBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.labTestUsecase.UpdateLabBookingStatus(r.Context(), actorID, id, &req)
	if err != nil {
		switch err {
		case usecase.ErrLabBookingNotFound:
			response.NotFound(w, "Lab booking not found")
		case usecase.ErrLabBookingFinalized:
			response.Conflict(w, "Lab booking already completed or cancelled")
		case usecase.ErrInvalidBookingStatus:
			response.BadRequest(w, "Unknown lab booking status")
		default:
			response.InternalServerError(w, "Failed to update lab booking status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Lab booking status updated successfully", booking)
}
