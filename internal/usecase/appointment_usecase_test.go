package usecase

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"clinic-backend/config"
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/domain/repository"
	"clinic-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// fakeAppointmentRepo mimics the appointments table including the partial
// unique index over active statuses: a second active insert for the same
// (doctor, date, slot) fails with a duplicate key error.
type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments map[uuid.UUID]*entity.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[uuid.UUID]*entity.Appointment)}
}

func (r *fakeAppointmentRepo) Create(_ context.Context, a *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.appointments {
		if existing.IsActive() &&
			existing.DoctorID == a.DoctorID &&
			existing.AppointmentDate.Equal(a.AppointmentDate) &&
			existing.TimeSlot == a.TimeSlot {
			return gorm.ErrDuplicatedKey
		}
	}
	a.ID = uuid.New()
	stored := *a
	r.appointments[a.ID] = &stored
	return nil
}

func (r *fakeAppointmentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (r *fakeAppointmentRepo) FindByPatientID(_ context.Context, patientID uuid.UUID) ([]entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Appointment
	for _, a := range r.appointments {
		if a.PatientID == patientID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) FindByDoctorID(_ context.Context, doctorID uuid.UUID) ([]entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Appointment
	for _, a := range r.appointments {
		if a.DoctorID == doctorID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) FindAll(_ context.Context) ([]entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Appointment
	for _, a := range r.appointments {
		out = append(out, *a)
	}
	return out, nil
}

func (r *fakeAppointmentRepo) CountActiveForSlot(_ context.Context, doctorID uuid.UUID, date time.Time, slot string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, a := range r.appointments {
		if a.IsActive() && a.DoctorID == doctorID && a.AppointmentDate.Equal(date) && a.TimeSlot == slot {
			count++
		}
	}
	return count, nil
}

func (r *fakeAppointmentRepo) ListActiveSlotsForDay(_ context.Context, doctorID uuid.UUID, date time.Time) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var slots []string
	for _, a := range r.appointments {
		if a.IsActive() && a.DoctorID == doctorID && a.AppointmentDate.Equal(date) {
			slots = append(slots, a.TimeSlot)
		}
	}
	return slots, nil
}

func (r *fakeAppointmentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.AppointmentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Status = status
	return nil
}

func (r *fakeAppointmentRepo) CountByStatus(_ context.Context, status entity.AppointmentStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, a := range r.appointments {
		if a.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *fakeAppointmentRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.appointments)), nil
}

type fakeAvailabilityRepo struct {
	entries map[uuid.UUID][]entity.AvailabilityEntry
}

func (r *fakeAvailabilityRepo) FindByDoctorID(_ context.Context, doctorID uuid.UUID) ([]entity.AvailabilityEntry, error) {
	return r.entries[doctorID], nil
}

func (r *fakeAvailabilityRepo) ReplaceForDoctor(_ context.Context, doctorID uuid.UUID, entries []entity.AvailabilityEntry) error {
	r.entries[doctorID] = entries
	return nil
}

type fakeDoctorRepo struct {
	profiles map[uuid.UUID]*entity.DoctorProfile
}

func (r *fakeDoctorRepo) WithTx(*gorm.DB) repository.DoctorProfileRepository { return r }

func (r *fakeDoctorRepo) Create(_ context.Context, p *entity.DoctorProfile) error {
	r.profiles[p.UserID] = p
	return nil
}

func (r *fakeDoctorRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.DoctorProfile, error) {
	return r.profiles[userID], nil
}

func (r *fakeDoctorRepo) FindAllActive(_ context.Context) ([]entity.DoctorProfile, error) {
	var out []entity.DoctorProfile
	for _, p := range r.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeDoctorRepo) Update(_ context.Context, p *entity.DoctorProfile) error {
	r.profiles[p.UserID] = p
	return nil
}

// passLocker hands the critical section straight through; the fake repo's
// uniqueness check then plays the part of the database index.
type passLocker struct{}

func (passLocker) WithSlotLock(ctx context.Context, _ string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// busyLocker simulates a lock already held by a competing request.
type busyLocker struct{}

func (busyLocker) WithSlotLock(context.Context, string, func(ctx context.Context) error) error {
	return service.ErrSlotLockNotAcquired
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type allocatorFixture struct {
	uc       AppointmentUsecase
	repo     *fakeAppointmentRepo
	avail    *fakeAvailabilityRepo
	doctorID uuid.UUID
}

func newAllocatorFixture(t *testing.T, booking config.BookingConfig, locker service.SlotLocker) *allocatorFixture {
	t.Helper()

	doctorID := uuid.New()
	doctors := &fakeDoctorRepo{profiles: map[uuid.UUID]*entity.DoctorProfile{
		doctorID: {UserID: doctorID, Specialization: "cardiology"},
	}}
	avail := &fakeAvailabilityRepo{entries: map[uuid.UUID][]entity.AvailabilityEntry{
		doctorID: {
			{DoctorID: doctorID, Weekday: "monday", StartTime: "09:00", EndTime: "11:00"},
		},
	}}
	repo := newFakeAppointmentRepo()

	uc := NewAppointmentUsecase(testLogger(), booking, repo, avail, doctors, locker, service.NopAuditRecorder{})
	return &allocatorFixture{uc: uc, repo: repo, avail: avail, doctorID: doctorID}
}

// 2026-08-31 is a Monday, matching the fixture's availability entry.
const monday = "2026-08-31"

func bookReq(doctorID uuid.UUID, date, slot string) *dto.BookAppointmentRequest {
	return &dto.BookAppointmentRequest{
		DoctorID:        doctorID,
		AppointmentDate: date,
		TimeSlot:        slot,
		Reason:          "checkup",
	}
}

func TestListAvailableSlots(t *testing.T) {
	f := newAllocatorFixture(t, config.BookingConfig{}, passLocker{})
	ctx := context.Background()

	got, err := f.uc.ListAvailableSlots(ctx, f.doctorID, monday)
	if err != nil {
		t.Fatalf("ListAvailableSlots() error = %v", err)
	}
	want := []string{"09:00", "09:30", "10:00", "10:30"}
	if len(got.Slots) != len(want) {
		t.Fatalf("Slots = %v, want %v", got.Slots, want)
	}
	for i := range want {
		if got.Slots[i] != want[i] {
			t.Fatalf("Slots = %v, want %v", got.Slots, want)
		}
	}
}

func TestListAvailableSlotsExcludesBooked(t *testing.T) {
	f := newAllocatorFixture(t, config.BookingConfig{}, passLocker{})
	ctx := context.Background()

	if _, err := f.uc.BookAppointment(ctx, uuid.New(), bookReq(f.doctorID, monday, "09:30")); err != nil {
		t.Fatalf("BookAppointment() error = %v", err)
	}

	got, err := f.uc.ListAvailableSlots(ctx, f.doctorID, monday)
	if err != nil {
		t.Fatalf("ListAvailableSlots() error = %v", err)
	}
	for _, slot := range got.Slots {
		if slot == "09:30" {
			t.Fatalf("booked slot 09:30 still listed in %v", got.Slots)
		}
	}
	if len(got.Slots) != 3 {
		t.Fatalf("len(Slots) = %d, want 3", len(got.Slots))
	}
}

func TestListAvailableSlotsUnknownDoctor(t *testing.T) {
	f := newAllocatorFixture(t, config.BookingConfig{}, passLocker{})

	_, err := f.uc.ListAvailableSlots(context.Background(), uuid.New(), monday)
	if !errors.Is(err, ErrDoctorNotFound) {
		t.Fatalf("error = %v, want ErrDoctorNotFound", err)
	}
}

func TestListAvailableSlotsInvalidDate(t *testing.T) {
	f := newAllocatorFixture(t, config.BookingConfig{}, passLocker{})

	_, err := f.uc.ListAvailableSlots(context.Background(), f.doctorID, "31-08-2026")
	if !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("error = %v, want ErrInvalidDate", err)
	}
}

func TestListAvailableSlotsEmptyOffSchedule(t *testing.T) {
	f := newAllocatorFixture(t, config.BookingConfig{}, passLocker{})

	// 2026-09-01 is a Tuesday; the fixture doctor only works Mondays.
	got, err := f.uc.ListAvailableSlots(context.Background(), f.doctorID, "2026-09-01")
	if err != nil {
		t.Fatalf("ListAvailableSlots() error = %v", err)
	}
	if len(got.Slots) != 0 {
		t.Fatalf("Slots = %v, want empty", got.Slots)
	}
}

func TestBookAppointment(t *testing.T) {
	f := newAllocatorFixture(t, config.BookingConfig{}, passLocker{})

	got, err := f.uc.BookAppointment(context.Background(), uuid.New(), bookReq(f.doctorID, monday, "10:00"))
	if err != nil {
		t.Fatalf("BookAppointment() error = %v", err)
	}
	if got.Status != string(entity.AppointmentStatusScheduled) {
		t.Errorf("Status = %s, want scheduled", got.Status)
	}
	if got.TimeSlot != "10:00" || got.AppointmentDate != monday {
		t.Errorf("booked %s %s, want %s 10:00", got.AppointmentDate, got.TimeSlot, monday)
	}
}

func TestBookAppointmentConflict(t *testing.T) {
	f := newAllocatorFixture(t, config.BookingConfig{}, passLocker{})
	ctx := context.Background()

	if _, err := f.uc.BookAppointment(ctx, uuid.New(), bookReq(f.doctorID, monday, "09:00")); err != nil {
		t.Fatalf("first BookAppointment() error = %v", err)
	}

	_, err := f.uc.BookAppointment(ctx, uuid.New(), bookReq(f.doctorID, monday, "09:00"))
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("second BookAppointment() error = %v, want ErrSlotTaken", err)
	}
}

func TestBookAppointmentSlotNotOffered(t *testing.T) {
	f := newAllocatorFixture(t, config.BookingConfig{}, passLocker{})

	tests := []struct {
		name string
		date string
		slot string
	}{
		{"outside working hours", monday, "14:00"},
		{"not a slot boundary", monday, "09:15"},
		{"day off", "2026-09-01", "09:00"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.BookAppointment(context.Background(), uuid.New(), bookReq(f.doctorID, tc.date, tc.slot))
			if !errors.Is(err, ErrSlotNotOffered) {
				t.Fatalf("error = %v, want ErrSlotNotOffered", err)
			}
		})
	}
}

func TestBookAppointmentPastDatePolicy(t *testing.T) {
	// Default policy allows back-dated bookings.
	f := newAllocatorFixture(t, config.BookingConfig{}, passLocker{})
	if _, err := f.uc.BookAppointment(context.Background(), uuid.New(), bookReq(f.doctorID, "2020-01-06", "09:00")); err != nil {
		t.Fatalf("back-dated booking with default policy error = %v", err)
	}

	// With the rejection flag on, the same booking fails.
	f = newAllocatorFixture(t, config.BookingConfig{RejectPastDates: true}, passLocker{})
	_, err := f.uc.BookAppointment(context.Background(), uuid.New(), bookReq(f.doctorID, "2020-01-06", "09:00"))
	if !errors.Is(err, ErrPastDate) {
		t.Fatalf("error = %v, want ErrPastDate", err)
	}
}

func TestBookAppointmentLockBusy(t *testing.T) {
	f := newAllocatorFixture(t, config.BookingConfig{}, busyLocker{})

	_, err := f.uc.BookAppointment(context.Background(), uuid.New(), bookReq(f.doctorID, monday, "09:00"))
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("error = %v, want ErrSlotTaken when lock is busy", err)
	}
}

func TestCancelThenRebook(t *testing.T) {
	f := newAllocatorFixture(t, config.BookingConfig{}, passLocker{})
	ctx := context.Background()
	patient := uuid.New()

	booked, err := f.uc.BookAppointment(ctx, patient, bookReq(f.doctorID, monday, "10:30"))
	if err != nil {
		t.Fatalf("BookAppointment() error = %v", err)
	}
	if err := f.uc.CancelAppointment(ctx, patient, entity.RoleIDPatient, booked.ID); err != nil {
		t.Fatalf("CancelAppointment() error = %v", err)
	}

	// The cancelled appointment no longer holds the slot.
	if _, err := f.uc.BookAppointment(ctx, uuid.New(), bookReq(f.doctorID, monday, "10:30")); err != nil {
		t.Fatalf("rebooking a cancelled slot error = %v", err)
	}
}

func TestCancelAppointmentAuthorization(t *testing.T) {
	f := newAllocatorFixture(t, config.BookingConfig{}, passLocker{})
	ctx := context.Background()
	patient := uuid.New()

	booked, err := f.uc.BookAppointment(ctx, patient, bookReq(f.doctorID, monday, "09:00"))
	if err != nil {
		t.Fatalf("BookAppointment() error = %v", err)
	}

	// A stranger cannot cancel, a non-owning doctor cannot cancel.
	if err := f.uc.CancelAppointment(ctx, uuid.New(), entity.RoleIDPatient, booked.ID); !errors.Is(err, ErrNotYourAppointment) {
		t.Fatalf("stranger cancel error = %v, want ErrNotYourAppointment", err)
	}
	if err := f.uc.CancelAppointment(ctx, uuid.New(), entity.RoleIDDoctor, booked.ID); !errors.Is(err, ErrNotYourAppointment) {
		t.Fatalf("foreign doctor cancel error = %v, want ErrNotYourAppointment", err)
	}

	// The owning doctor and admin may cancel.
	if err := f.uc.CancelAppointment(ctx, f.doctorID, entity.RoleIDDoctor, booked.ID); err != nil {
		t.Fatalf("owning doctor cancel error = %v", err)
	}
}

func TestCancelAppointmentOwnershipCheckedBeforeState(t *testing.T) {
	f := newAllocatorFixture(t, config.BookingConfig{}, passLocker{})
	ctx := context.Background()
	patient := uuid.New()

	booked, err := f.uc.BookAppointment(ctx, patient, bookReq(f.doctorID, monday, "09:00"))
	if err != nil {
		t.Fatalf("BookAppointment() error = %v", err)
	}
	if err := f.uc.CancelAppointment(ctx, patient, entity.RoleIDPatient, booked.ID); err != nil {
		t.Fatalf("CancelAppointment() error = %v", err)
	}

	// A stranger probing a terminal appointment learns nothing about its
	// state: the ownership error wins.
	err = f.uc.CancelAppointment(ctx, uuid.New(), entity.RoleIDPatient, booked.ID)
	if !errors.Is(err, ErrNotYourAppointment) {
		t.Fatalf("error = %v, want ErrNotYourAppointment", err)
	}

	// The owner gets the real state error.
	err = f.uc.CancelAppointment(ctx, patient, entity.RoleIDPatient, booked.ID)
	if !errors.Is(err, ErrInvalidStatusTransition) {
		t.Fatalf("error = %v, want ErrInvalidStatusTransition", err)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		via     []string
		to      string
		wantErr error
	}{
		{"scheduled to completed", nil, "completed", nil},
		{"scheduled to rescheduled", nil, "rescheduled", nil},
		{"rescheduled to completed", []string{"rescheduled"}, "completed", nil},
		{"rescheduled to rescheduled", []string{"rescheduled"}, "rescheduled", ErrInvalidStatusTransition},
		{"completed is terminal", []string{"completed"}, "cancelled", ErrInvalidStatusTransition},
		{"cancelled is terminal", []string{"cancelled"}, "completed", ErrInvalidStatusTransition},
		{"unknown status", nil, "postponed", ErrInvalidStatus},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newAllocatorFixture(t, config.BookingConfig{}, passLocker{})
			booked, err := f.uc.BookAppointment(ctx, uuid.New(), bookReq(f.doctorID, monday, "09:00"))
			if err != nil {
				t.Fatalf("BookAppointment() error = %v", err)
			}
			for _, status := range tc.via {
				if _, err := f.uc.UpdateStatus(ctx, f.doctorID, entity.RoleIDDoctor, booked.ID, &dto.UpdateAppointmentStatusRequest{Status: status}); err != nil {
					t.Fatalf("setup transition to %s error = %v", status, err)
				}
			}

			_, err = f.uc.UpdateStatus(ctx, f.doctorID, entity.RoleIDDoctor, booked.ID, &dto.UpdateAppointmentStatusRequest{Status: tc.to})
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("UpdateStatus(%s) error = %v, want %v", tc.to, err, tc.wantErr)
			}
		})
	}
}

func TestUpdateStatusForeignDoctor(t *testing.T) {
	f := newAllocatorFixture(t, config.BookingConfig{}, passLocker{})
	ctx := context.Background()

	booked, err := f.uc.BookAppointment(ctx, uuid.New(), bookReq(f.doctorID, monday, "09:00"))
	if err != nil {
		t.Fatalf("BookAppointment() error = %v", err)
	}

	_, err = f.uc.UpdateStatus(ctx, uuid.New(), entity.RoleIDDoctor, booked.ID, &dto.UpdateAppointmentStatusRequest{Status: "completed"})
	if !errors.Is(err, ErrNotYourAppointment) {
		t.Fatalf("error = %v, want ErrNotYourAppointment", err)
	}
}

// TestConcurrentBookingSingleWinner hammers one slot from many goroutines.
// Exactly one booking must win; every loser sees the same conflict error.
func TestConcurrentBookingSingleWinner(t *testing.T) {
	f := newAllocatorFixture(t, config.BookingConfig{}, passLocker{})
	ctx := context.Background()

	const n = 32
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.uc.BookAppointment(ctx, uuid.New(), bookReq(f.doctorID, monday, "09:30"))
			errs[i] = err
		}(i)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrSlotTaken):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("wins = %d, want exactly 1", wins)
	}
	if conflicts != n-1 {
		t.Fatalf("conflicts = %d, want %d", conflicts, n-1)
	}

	count, err := f.repo.CountActiveForSlot(ctx, f.doctorID, mustDate(t, monday), "09:30")
	if err != nil {
		t.Fatalf("CountActiveForSlot() error = %v", err)
	}
	if count != 1 {
		t.Fatalf("active appointments for slot = %d, want 1", count)
	}
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return date
}
