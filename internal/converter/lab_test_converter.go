package converter

import (
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"

	"github.com/google/uuid"
)

// LabTestToResponse converts a LabTest entity to its response DTO
func LabTestToResponse(test *entity.LabTest) *dto.LabTestResponse {
	if test == nil {
		return nil
	}

	return &dto.LabTestResponse{
		ID:          test.ID,
		Name:        test.Name,
		Description: test.Description,
		Price:       test.Price,
		IsActive:    test.IsActive,
		CreatedAt:   test.CreatedAt,
		UpdatedAt:   test.UpdatedAt,
	}
}

// LabTestsToResponses converts a slice of LabTest entities
func LabTestsToResponses(tests []entity.LabTest) []dto.LabTestResponse {
	responses := make([]dto.LabTestResponse, len(tests))
	for i := range tests {
		responses[i] = *LabTestToResponse(&tests[i])
	}
	return responses
}

// LabBookingToResponse converts a LabTestBooking entity to its response DTO
func LabBookingToResponse(booking *entity.LabTestBooking) *dto.LabBookingResponse {
	if booking == nil {
		return nil
	}

	response := &dto.LabBookingResponse{
		ID:            booking.ID,
		PatientID:     booking.PatientID,
		ScheduledDate: booking.ScheduledDate.Format("2006-01-02"),
		Status:        string(booking.Status),
		PaymentMethod: booking.PaymentMethod,
		Price:         booking.Price,
		CreatedAt:     booking.CreatedAt,
		UpdatedAt:     booking.UpdatedAt,
	}

	if booking.LabTest.ID != uuid.Nil {
		response.LabTest = LabTestToResponse(&booking.LabTest)
	}

	return response
}

// LabBookingsToResponses converts a slice of LabTestBooking entities
func LabBookingsToResponses(bookings []entity.LabTestBooking) []dto.LabBookingResponse {
	responses := make([]dto.LabBookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = *LabBookingToResponse(&bookings[i])
	}
	return responses
}
