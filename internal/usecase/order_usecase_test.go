package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type fakeMedicineRepo struct {
	mu        sync.Mutex
	medicines map[uuid.UUID]*entity.Medicine
}

func newFakeMedicineRepo(medicines ...*entity.Medicine) *fakeMedicineRepo {
	r := &fakeMedicineRepo{medicines: make(map[uuid.UUID]*entity.Medicine)}
	for _, m := range medicines {
		r.medicines[m.ID] = m
	}
	return r
}

func (r *fakeMedicineRepo) Create(_ context.Context, m *entity.Medicine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = uuid.New()
	r.medicines[m.ID] = m
	return nil
}

func (r *fakeMedicineRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Medicine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.medicines[id]
	if !ok {
		return nil, nil
	}
	copied := *m
	return &copied, nil
}

func (r *fakeMedicineRepo) FindAllActive(_ context.Context) ([]entity.Medicine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Medicine
	for _, m := range r.medicines {
		if m.IsActive {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMedicineRepo) FindAll(_ context.Context) ([]entity.Medicine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Medicine
	for _, m := range r.medicines {
		out = append(out, *m)
	}
	return out, nil
}

func (r *fakeMedicineRepo) Update(_ context.Context, m *entity.Medicine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.medicines[m.ID] = m
	return nil
}

func (r *fakeMedicineRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.medicines[id]; !ok {
		return 0, nil
	}
	delete(r.medicines, id)
	return 1, nil
}

func (r *fakeMedicineRepo) DecrementStock(_ context.Context, id uuid.UUID, quantity int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.medicines[id]
	if !ok || m.Stock < quantity {
		return false, nil
	}
	m.Stock -= quantity
	return true, nil
}

func (r *fakeMedicineRepo) RestoreStock(_ context.Context, id uuid.UUID, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.medicines[id]; ok {
		m.Stock += quantity
	}
	return nil
}

func (r *fakeMedicineRepo) stock(id uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.medicines[id].Stock
}

type fakeOrderRepo struct {
	mu        sync.Mutex
	orders    map[uuid.UUID]*entity.Order
	createErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*entity.Order)}
}

func (r *fakeOrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	o.ID = uuid.New()
	stored := *o
	r.orders[o.ID] = &stored
	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	copied := *o
	return &copied, nil
}

func (r *fakeOrderRepo) FindByPatientID(_ context.Context, patientID uuid.UUID) ([]entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Order
	for _, o := range r.orders {
		if o.PatientID == patientID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) FindAll(_ context.Context) ([]entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Order
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.orders[id]; ok {
		o.Status = status
	}
	return nil
}

func (r *fakeOrderRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.orders)), nil
}

func newOrderFixture(medicines ...*entity.Medicine) (OrderUsecase, *fakeOrderRepo, *fakeMedicineRepo) {
	medicineRepo := newFakeMedicineRepo(medicines...)
	orderRepo := newFakeOrderRepo()
	uc := NewOrderUsecase(testLogger(), orderRepo, medicineRepo, service.NopAuditRecorder{})
	return uc, orderRepo, medicineRepo
}

func testMedicine(name string, price string, stock int) *entity.Medicine {
	return &entity.Medicine{
		ID:       uuid.New(),
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
		Category: entity.MedicineCategoryTablet,
		IsActive: true,
	}
}

func TestCreateOrder(t *testing.T) {
	aspirin := testMedicine("aspirin", "3.50", 10)
	syrup := testMedicine("cough syrup", "7.25", 4)
	uc, _, medicineRepo := newOrderFixture(aspirin, syrup)

	got, err := uc.CreateOrder(context.Background(), uuid.New(), &dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{
			{MedicineID: aspirin.ID, Quantity: 2},
			{MedicineID: syrup.ID, Quantity: 1},
		},
		DeliveryAddress: "12 Main St",
		PaymentMethod:   entity.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}

	if want := decimal.RequireFromString("14.25"); !got.TotalAmount.Equal(want) {
		t.Errorf("TotalAmount = %s, want %s", got.TotalAmount, want)
	}
	if got.Status != string(entity.OrderStatusPending) {
		t.Errorf("Status = %s, want pending", got.Status)
	}
	if medicineRepo.stock(aspirin.ID) != 8 {
		t.Errorf("aspirin stock = %d, want 8", medicineRepo.stock(aspirin.ID))
	}
	if medicineRepo.stock(syrup.ID) != 3 {
		t.Errorf("syrup stock = %d, want 3", medicineRepo.stock(syrup.ID))
	}
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	aspirin := testMedicine("aspirin", "3.50", 10)
	syrup := testMedicine("cough syrup", "7.25", 1)
	uc, _, medicineRepo := newOrderFixture(aspirin, syrup)

	_, err := uc.CreateOrder(context.Background(), uuid.New(), &dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{
			{MedicineID: aspirin.ID, Quantity: 2},
			{MedicineID: syrup.ID, Quantity: 5},
		},
		DeliveryAddress: "12 Main St",
		PaymentMethod:   entity.PaymentMethodCard,
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("error = %v, want ErrInsufficientStock", err)
	}

	// The aspirin claimed before the failure is back in stock.
	if medicineRepo.stock(aspirin.ID) != 10 {
		t.Errorf("aspirin stock = %d, want 10 after compensation", medicineRepo.stock(aspirin.ID))
	}
	if medicineRepo.stock(syrup.ID) != 1 {
		t.Errorf("syrup stock = %d, want 1", medicineRepo.stock(syrup.ID))
	}
}

func TestCreateOrderInsertFailureRestoresStock(t *testing.T) {
	aspirin := testMedicine("aspirin", "3.50", 10)
	uc, orderRepo, medicineRepo := newOrderFixture(aspirin)
	orderRepo.createErr = errors.New("connection reset")

	_, err := uc.CreateOrder(context.Background(), uuid.New(), &dto.CreateOrderRequest{
		Items:           []dto.OrderItemRequest{{MedicineID: aspirin.ID, Quantity: 3}},
		DeliveryAddress: "12 Main St",
		PaymentMethod:   entity.PaymentMethodUPI,
	})
	if err == nil {
		t.Fatal("CreateOrder() expected error when insert fails")
	}
	if medicineRepo.stock(aspirin.ID) != 10 {
		t.Errorf("stock = %d, want 10 after compensation", medicineRepo.stock(aspirin.ID))
	}
}

func TestCreateOrderInactiveMedicine(t *testing.T) {
	discontinued := testMedicine("old pills", "1.00", 10)
	discontinued.IsActive = false
	uc, _, _ := newOrderFixture(discontinued)

	_, err := uc.CreateOrder(context.Background(), uuid.New(), &dto.CreateOrderRequest{
		Items:           []dto.OrderItemRequest{{MedicineID: discontinued.ID, Quantity: 1}},
		DeliveryAddress: "12 Main St",
		PaymentMethod:   entity.PaymentMethodCash,
	})
	if !errors.Is(err, ErrMedicineNotFound) {
		t.Fatalf("error = %v, want ErrMedicineNotFound", err)
	}
}

func TestConcurrentOrdersNeverOversell(t *testing.T) {
	aspirin := testMedicine("aspirin", "3.50", 5)
	uc, _, medicineRepo := newOrderFixture(aspirin)

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := uc.CreateOrder(context.Background(), uuid.New(), &dto.CreateOrderRequest{
				Items:           []dto.OrderItemRequest{{MedicineID: aspirin.ID, Quantity: 1}},
				DeliveryAddress: "12 Main St",
				PaymentMethod:   entity.PaymentMethodCash,
			})
			errs[i] = err
		}(i)
	}
	wg.Wait()

	var wins int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrInsufficientStock):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 5 {
		t.Fatalf("successful orders = %d, want 5", wins)
	}
	if medicineRepo.stock(aspirin.ID) != 0 {
		t.Fatalf("stock = %d, want 0", medicineRepo.stock(aspirin.ID))
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	aspirin := testMedicine("aspirin", "3.50", 10)
	uc, _, medicineRepo := newOrderFixture(aspirin)
	ctx := context.Background()

	created, err := uc.CreateOrder(ctx, uuid.New(), &dto.CreateOrderRequest{
		Items:           []dto.OrderItemRequest{{MedicineID: aspirin.ID, Quantity: 4}},
		DeliveryAddress: "12 Main St",
		PaymentMethod:   entity.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}

	// Cancelling restores the claimed stock.
	admin := uuid.New()
	if _, err := uc.UpdateOrderStatus(ctx, admin, created.ID, &dto.UpdateOrderStatusRequest{Status: "cancelled"}); err != nil {
		t.Fatalf("UpdateOrderStatus() error = %v", err)
	}
	if medicineRepo.stock(aspirin.ID) != 10 {
		t.Errorf("stock = %d, want 10 after cancel", medicineRepo.stock(aspirin.ID))
	}

	// Cancelled orders are final.
	_, err = uc.UpdateOrderStatus(ctx, admin, created.ID, &dto.UpdateOrderStatusRequest{Status: "processing"})
	if !errors.Is(err, ErrInvalidOrderState) {
		t.Fatalf("error = %v, want ErrInvalidOrderState", err)
	}
}
