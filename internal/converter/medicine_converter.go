package converter

import (
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
)

// MedicineToResponse converts a Medicine entity to its response DTO
func MedicineToResponse(medicine *entity.Medicine) *dto.MedicineResponse {
	if medicine == nil {
		return nil
	}

	response := &dto.MedicineResponse{
		ID:           medicine.ID,
		Name:         medicine.Name,
		Description:  medicine.Description,
		Price:        medicine.Price,
		Stock:        medicine.Stock,
		Category:     medicine.Category,
		Manufacturer: medicine.Manufacturer,
		IsActive:     medicine.IsActive,
		CreatedAt:    medicine.CreatedAt,
		UpdatedAt:    medicine.UpdatedAt,
	}
	if !medicine.ExpiryDate.IsZero() {
		response.ExpiryDate = medicine.ExpiryDate.Format("2006-01-02")
	}
	return response
}

// MedicinesToResponses converts a slice of Medicine entities
func MedicinesToResponses(medicines []entity.Medicine) []dto.MedicineResponse {
	responses := make([]dto.MedicineResponse, len(medicines))
	for i := range medicines {
		responses[i] = *MedicineToResponse(&medicines[i])
	}
	return responses
}

// OrderToResponse converts an Order entity to its response DTO
func OrderToResponse(order *entity.Order) *dto.OrderResponse {
	if order == nil {
		return nil
	}

	items := make([]dto.OrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = dto.OrderItemResponse{
			MedicineID: item.MedicineID,
			Name:       item.Name,
			UnitPrice:  item.UnitPrice,
			Quantity:   item.Quantity,
		}
	}

	return &dto.OrderResponse{
		ID:              order.ID,
		PatientID:       order.PatientID,
		Items:           items,
		TotalAmount:     order.TotalAmount,
		Status:          string(order.Status),
		DeliveryAddress: order.DeliveryAddress,
		PaymentMethod:   order.PaymentMethod,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

// OrdersToResponses converts a slice of Order entities
func OrdersToResponses(orders []entity.Order) []dto.OrderResponse {
	responses := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		responses[i] = *OrderToResponse(&orders[i])
	}
	return responses
}
