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
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrNotYourOrder      = errors.New("order does not belong to you")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidOrderState = errors.New("invalid order status")
)

type OrderUsecase interface {
	CreateOrder(ctx context.Context, patientID uuid.UUID, req *dto.CreateOrderRequest) (*dto.OrderResponse, error)
	GetOrder(ctx context.Context, actorID uuid.UUID, roleID int, id uuid.UUID) (*dto.OrderResponse, error)
	GetMyOrders(ctx context.Context, patientID uuid.UUID) (*dto.OrderListResponse, error)
	ListAllOrders(ctx context.Context) (*dto.OrderListResponse, error)
	UpdateOrderStatus(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error)
}

type orderUsecase struct {
	log          *logrus.Logger
	orderRepo    repository.OrderRepository
	medicineRepo repository.MedicineRepository
	audit        service.AuditRecorder
}

func NewOrderUsecase(
	log *logrus.Logger,
	orderRepo repository.OrderRepository,
	medicineRepo repository.MedicineRepository,
	audit service.AuditRecorder,
) OrderUsecase {
	return &orderUsecase{
		log:          log,
		orderRepo:    orderRepo,
		medicineRepo: medicineRepo,
		audit:        audit,
	}
}

// CreateOrder places a medicine order for the patient.
//
// Stock is claimed per item with a conditional decrement that only succeeds
// while enough stock remains, so two concurrent orders can never oversell.
// If any later step fails, every decrement made so far is restored.
func (u *orderUsecase) CreateOrder(ctx context.Context, patientID uuid.UUID, req *dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	type claimed struct {
		medicineID uuid.UUID
		quantity   int
	}
	var claims []claimed

	restore := func() {
		for _, c := range claims {
			if err := u.medicineRepo.RestoreStock(ctx, c.medicineID, c.quantity); err != nil {
				u.log.Errorf("Failed to restore %d units of medicine %s: %+v", c.quantity, c.medicineID, err)
			}
		}
	}

	items := make([]entity.OrderItem, 0, len(req.Items))
	total := decimal.Zero
	for _, item := range req.Items {
		medicine, err := u.medicineRepo.FindByID(ctx, item.MedicineID)
		if err != nil {
			u.log.Warnf("Failed to find medicine %s: %+v", item.MedicineID, err)
			restore()
			return nil, err
		}
		if medicine == nil || !medicine.IsActive {
			restore()
			return nil, ErrMedicineNotFound
		}

		ok, err := u.medicineRepo.DecrementStock(ctx, item.MedicineID, item.Quantity)
		if err != nil {
			u.log.Warnf("Failed to decrement stock of medicine %s: %+v", item.MedicineID, err)
			restore()
			return nil, err
		}
		if !ok {
			restore()
			return nil, ErrInsufficientStock
		}
		claims = append(claims, claimed{medicineID: item.MedicineID, quantity: item.Quantity})

		// Name and unit price are frozen at purchase time.
		items = append(items, entity.OrderItem{
			MedicineID: medicine.ID,
			Name:       medicine.Name,
			UnitPrice:  medicine.Price,
			Quantity:   item.Quantity,
		})
		total = total.Add(medicine.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	order := &entity.Order{
		PatientID:       patientID,
		TotalAmount:     total,
		Status:          entity.OrderStatusPending,
		DeliveryAddress: req.DeliveryAddress,
		PaymentMethod:   req.PaymentMethod,
		Items:           items,
	}

	if err := u.orderRepo.Create(ctx, order); err != nil {
		u.log.Errorf("Failed to insert order, restoring stock: %+v", err)
		restore()
		return nil, err
	}

	u.audit.Record(ctx, &patientID, entity.AuditActionOrderCreate, entity.JSON{
		"order_id": order.ID.String(),
		"total":    total.String(),
		"items":    len(items),
	})

	u.log.Infof("Order created: id=%s, patient=%s, total=%s", order.ID, patientID, total)
	return converter.OrderToResponse(order), nil
}

func (u *orderUsecase) GetOrder(ctx context.Context, actorID uuid.UUID, roleID int, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := u.orderRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find order %s: %+v", id, err)
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if roleID != entity.RoleIDAdmin && order.PatientID != actorID {
		return nil, ErrNotYourOrder
	}
	return converter.OrderToResponse(order), nil
}

func (u *orderUsecase) GetMyOrders(ctx context.Context, patientID uuid.UUID) (*dto.OrderListResponse, error) {
	orders, err := u.orderRepo.FindByPatientID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to list orders for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.OrderListResponse{
		Orders: converter.OrdersToResponses(orders),
		Total:  len(orders),
	}, nil
}

func (u *orderUsecase) ListAllOrders(ctx context.Context) (*dto.OrderListResponse, error) {
	orders, err := u.orderRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list orders: %+v", err)
		return nil, err
	}

	return &dto.OrderListResponse{
		Orders: converter.OrdersToResponses(orders),
		Total:  len(orders),
	}, nil
}

// UpdateOrderStatus is an admin operation. Completed and cancelled orders are
// final; cancelling an order returns its items to stock.
func (u *orderUsecase) UpdateOrderStatus(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	if !entity.IsValidOrderStatus(req.Status) {
		return nil, ErrInvalidOrderState
	}
	next := entity.OrderStatus(req.Status)

	order, err := u.orderRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find order %s: %+v", id, err)
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status == entity.OrderStatusCompleted || order.Status == entity.OrderStatusCancelled {
		return nil, ErrInvalidOrderState
	}

	if err := u.orderRepo.UpdateStatus(ctx, id, next); err != nil {
		u.log.Warnf("Failed to update order %s to %s: %+v", id, next, err)
		return nil, err
	}

	if next == entity.OrderStatusCancelled {
		for _, item := range order.Items {
			if err := u.medicineRepo.RestoreStock(ctx, item.MedicineID, item.Quantity); err != nil {
				u.log.Errorf("Failed to restore stock of medicine %s for cancelled order %s: %+v", item.MedicineID, id, err)
			}
		}
	}

	u.audit.Record(ctx, &actorID, entity.AuditActionOrderStatus, entity.JSON{
		"order_id": id.String(),
		"from":     string(order.Status),
		"to":       string(next),
	})

	order.Status = next
	return converter.OrderToResponse(order), nil
}
