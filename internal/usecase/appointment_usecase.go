package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-backend/config"
	"clinic-backend/internal/converter"
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/domain/repository"
	"clinic-backend/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound          = errors.New("doctor not found")
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrSlotTaken               = errors.New("time slot is already booked")
	ErrSlotNotOffered          = errors.New("doctor does not offer this time slot on that date")
	ErrNotYourAppointment      = errors.New("appointment does not belong to you")
	ErrInvalidStatusTransition = errors.New("invalid appointment status transition")
	ErrInvalidStatus           = errors.New("unknown appointment status")
	ErrInvalidDate             = errors.New("invalid date, expected YYYY-MM-DD")
	ErrPastDate                = errors.New("cannot book an appointment on a past date")
)

type AppointmentUsecase interface {
	ListAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailableSlotsResponse, error)
	BookAppointment(ctx context.Context, patientID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, actorID uuid.UUID, roleID int, id uuid.UUID) (*dto.AppointmentResponse, error)
	ListMyAppointments(ctx context.Context, actorID uuid.UUID, roleID int) (*dto.AppointmentListResponse, error)
	CancelAppointment(ctx context.Context, actorID uuid.UUID, roleID int, id uuid.UUID) error
	UpdateStatus(ctx context.Context, actorID uuid.UUID, roleID int, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	log             *logrus.Logger
	booking         config.BookingConfig
	appointmentRepo repository.AppointmentRepository
	availRepo       repository.AvailabilityRepository
	doctorRepo      repository.DoctorProfileRepository
	slotLocker      service.SlotLocker
	audit           service.AuditRecorder
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	booking config.BookingConfig,
	appointmentRepo repository.AppointmentRepository,
	availRepo repository.AvailabilityRepository,
	doctorRepo repository.DoctorProfileRepository,
	slotLocker service.SlotLocker,
	audit service.AuditRecorder,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		booking:         booking,
		appointmentRepo: appointmentRepo,
		availRepo:       availRepo,
		doctorRepo:      doctorRepo,
		slotLocker:      slotLocker,
		audit:           audit,
	}
}

// ListAvailableSlots returns the doctor's bookable slot start times on the
// given date: the weekly schedule expanded to concrete slots, minus the slots
// already held by an active appointment. Cancelled and completed appointments
// do not block a slot.
func (u *appointmentUsecase) ListAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailableSlotsResponse, error) {
	day, err := parseDateOnly(date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	doctor, err := u.doctorRepo.FindByUserID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	response := &dto.AvailableSlotsResponse{
		DoctorID: doctorID,
		Date:     day.Format("2006-01-02"),
		Slots:    []string{},
	}

	if u.booking.RejectPastDates && day.Before(today()) {
		return response, nil
	}

	entries, err := u.availRepo.FindByDoctorID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to load availability for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	all := entity.SlotsForDate(entries, day)
	if len(all) == 0 {
		return response, nil
	}

	taken, err := u.appointmentRepo.ListActiveSlotsForDay(ctx, doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to load booked slots for doctor %s on %s: %+v", doctorID, date, err)
		return nil, err
	}

	takenSet := make(map[string]bool, len(taken))
	for _, slot := range taken {
		takenSet[slot] = true
	}
	for _, slot := range all {
		if !takenSet[slot] {
			response.Slots = append(response.Slots, slot)
		}
	}
	return response, nil
}

// BookAppointment books one slot for the patient.
//
// Flow:
// 1. Validate date, past-date policy, doctor and offered slot
// 2. Acquire the per-(doctor, date, slot) lock
// 3. Re-check the slot is free, then insert with status scheduled
// 4. A unique index violation on insert maps to the same conflict as the
//    pre-check; a lost lock race reports the same conflict too
func (u *appointmentUsecase) BookAppointment(ctx context.Context, patientID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	day, err := parseDateOnly(req.AppointmentDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if u.booking.RejectPastDates && day.Before(today()) {
		return nil, ErrPastDate
	}

	doctor, err := u.doctorRepo.FindByUserID(ctx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	entries, err := u.availRepo.FindByDoctorID(ctx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to load availability for doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if !containsSlot(entity.SlotsForDate(entries, day), req.TimeSlot) {
		return nil, ErrSlotNotOffered
	}

	appointment := &entity.Appointment{
		PatientID:       patientID,
		DoctorID:        req.DoctorID,
		AppointmentDate: day,
		TimeSlot:        req.TimeSlot,
		Status:          entity.AppointmentStatusScheduled,
		Reason:          req.Reason,
	}

	lockKey := service.SlotLockKey(req.DoctorID, day, req.TimeSlot)
	err = u.slotLocker.WithSlotLock(ctx, lockKey, func(ctx context.Context) error {
		count, err := u.appointmentRepo.CountActiveForSlot(ctx, req.DoctorID, day, req.TimeSlot)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrSlotTaken
		}
		return u.appointmentRepo.Create(ctx, appointment)
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSlotLockNotAcquired):
			// Another request holds this exact slot right now; from the
			// caller's point of view the slot is taken.
			return nil, ErrSlotTaken
		case errors.Is(err, ErrSlotTaken):
			return nil, ErrSlotTaken
		case isDuplicateKeyError(err):
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to book slot %s for patient %s: %+v", lockKey, patientID, err)
		return nil, err
	}

	u.audit.Record(ctx, &patientID, entity.AuditActionAppointmentBook, entity.JSON{
		"appointment_id": appointment.ID.String(),
		"doctor_id":      req.DoctorID.String(),
		"date":           day.Format("2006-01-02"),
		"time_slot":      req.TimeSlot,
	})

	full, err := u.appointmentRepo.FindByID(ctx, appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}

	u.log.Infof("Appointment booked: id=%s, doctor=%s, date=%s, slot=%s",
		appointment.ID, req.DoctorID, day.Format("2006-01-02"), req.TimeSlot)
	return converter.AppointmentToResponse(full), nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, actorID uuid.UUID, roleID int, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.findOwned(ctx, actorID, roleID, id)
	if err != nil {
		return nil, err
	}
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) ListMyAppointments(ctx context.Context, actorID uuid.UUID, roleID int) (*dto.AppointmentListResponse, error) {
	var (
		appointments []entity.Appointment
		err          error
	)
	switch roleID {
	case entity.RoleIDDoctor:
		appointments, err = u.appointmentRepo.FindByDoctorID(ctx, actorID)
	case entity.RoleIDAdmin:
		appointments, err = u.appointmentRepo.FindAll(ctx)
	default:
		appointments, err = u.appointmentRepo.FindByPatientID(ctx, actorID)
	}
	if err != nil {
		u.log.Warnf("Failed to list appointments for %s: %+v", actorID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// CancelAppointment frees the slot. Patients and doctors may only cancel
// their own appointments; admins may cancel any. Terminal appointments
// cannot be cancelled again.
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, actorID uuid.UUID, roleID int, id uuid.UUID) error {
	appointment, err := u.findOwned(ctx, actorID, roleID, id)
	if err != nil {
		return err
	}
	if !appointment.CanTransitionTo(entity.AppointmentStatusCancelled) {
		return ErrInvalidStatusTransition
	}

	if err := u.appointmentRepo.UpdateStatus(ctx, id, entity.AppointmentStatusCancelled); err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", id, err)
		return err
	}

	u.audit.Record(ctx, &actorID, entity.AuditActionAppointmentCancel, entity.JSON{
		"appointment_id": id.String(),
	})
	return nil
}

// UpdateStatus moves an appointment along its lifecycle. Doctors may only
// transition their own appointments; admins may transition any. Ownership is
// checked before the transition so a foreign appointment never leaks its
// state through the error.
func (u *appointmentUsecase) UpdateStatus(ctx context.Context, actorID uuid.UUID, roleID int, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	if !entity.IsValidAppointmentStatus(req.Status) {
		return nil, ErrInvalidStatus
	}
	next := entity.AppointmentStatus(req.Status)

	appointment, err := u.findOwned(ctx, actorID, roleID, id)
	if err != nil {
		return nil, err
	}
	if !appointment.CanTransitionTo(next) {
		return nil, ErrInvalidStatusTransition
	}

	if err := u.appointmentRepo.UpdateStatus(ctx, id, next); err != nil {
		u.log.Warnf("Failed to update appointment %s to %s: %+v", id, next, err)
		return nil, err
	}

	u.audit.Record(ctx, &actorID, entity.AuditActionAppointmentStatus, entity.JSON{
		"appointment_id": id.String(),
		"from":           string(appointment.Status),
		"to":             string(next),
	})

	appointment.Status = next
	return converter.AppointmentToResponse(appointment), nil
}

// findOwned loads the appointment and enforces that the actor may act on it.
func (u *appointmentUsecase) findOwned(ctx context.Context, actorID uuid.UUID, roleID int, id uuid.UUID) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	switch roleID {
	case entity.RoleIDAdmin:
	case entity.RoleIDDoctor:
		if appointment.DoctorID != actorID {
			return nil, ErrNotYourAppointment
		}
	default:
		if appointment.PatientID != actorID {
			return nil, ErrNotYourAppointment
		}
	}
	return appointment, nil
}

func parseDateOnly(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

func containsSlot(slots []string, slot string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}

// isDuplicateKeyError reports whether err is a Postgres unique violation.
func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
