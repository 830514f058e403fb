package usecase

import (
	"context"

	"clinic-backend/internal/converter"
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

type AdminUsecase interface {
	GetClinicStats(ctx context.Context) (*dto.ClinicStatsResponse, error)
	ListAuditLogs(ctx context.Context, page, limit int) (*dto.AuditLogListResponse, error)
	ListRoles(ctx context.Context) ([]entity.Role, error)
}

type adminUsecase struct {
	log             *logrus.Logger
	userRepo        repository.UserRepository
	roleRepo        repository.RoleRepository
	appointmentRepo repository.AppointmentRepository
	orderRepo       repository.OrderRepository
	labBookingRepo  repository.LabTestBookingRepository
	auditRepo       repository.AuditLogRepository
}

func NewAdminUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	appointmentRepo repository.AppointmentRepository,
	orderRepo repository.OrderRepository,
	labBookingRepo repository.LabTestBookingRepository,
	auditRepo repository.AuditLogRepository,
) AdminUsecase {
	return &adminUsecase{
		log:             log,
		userRepo:        userRepo,
		roleRepo:        roleRepo,
		appointmentRepo: appointmentRepo,
		orderRepo:       orderRepo,
		labBookingRepo:  labBookingRepo,
		auditRepo:       auditRepo,
	}
}

func (u *adminUsecase) GetClinicStats(ctx context.Context) (*dto.ClinicStatsResponse, error) {
	stats := &dto.ClinicStatsResponse{}

	var err error
	if stats.TotalDoctors, err = u.userRepo.CountByRoleID(ctx, entity.RoleIDDoctor); err != nil {
		u.log.Warnf("Failed to count doctors: %+v", err)
		return nil, err
	}
	if stats.TotalPatients, err = u.userRepo.CountByRoleID(ctx, entity.RoleIDPatient); err != nil {
		u.log.Warnf("Failed to count patients: %+v", err)
		return nil, err
	}
	if stats.TotalAppointments, err = u.appointmentRepo.Count(ctx); err != nil {
		u.log.Warnf("Failed to count appointments: %+v", err)
		return nil, err
	}
	if stats.ScheduledAppointments, err = u.appointmentRepo.CountByStatus(ctx, entity.AppointmentStatusScheduled); err != nil {
		u.log.Warnf("Failed to count scheduled appointments: %+v", err)
		return nil, err
	}
	if stats.CompletedAppointments, err = u.appointmentRepo.CountByStatus(ctx, entity.AppointmentStatusCompleted); err != nil {
		u.log.Warnf("Failed to count completed appointments: %+v", err)
		return nil, err
	}
	if stats.CancelledAppointments, err = u.appointmentRepo.CountByStatus(ctx, entity.AppointmentStatusCancelled); err != nil {
		u.log.Warnf("Failed to count cancelled appointments: %+v", err)
		return nil, err
	}
	if stats.TotalOrders, err = u.orderRepo.Count(ctx); err != nil {
		u.log.Warnf("Failed to count orders: %+v", err)
		return nil, err
	}
	if stats.TotalLabBookings, err = u.labBookingRepo.Count(ctx); err != nil {
		u.log.Warnf("Failed to count lab bookings: %+v", err)
		return nil, err
	}

	return stats, nil
}

func (u *adminUsecase) ListAuditLogs(ctx context.Context, page, limit int) (*dto.AuditLogListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	logs, total, err := u.auditRepo.FindRecent(ctx, limit, (page-1)*limit)
	if err != nil {
		u.log.Warnf("Failed to list audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: total,
	}, nil
}

func (u *adminUsecase) ListRoles(ctx context.Context) ([]entity.Role, error) {
	roles, err := u.roleRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list roles: %+v", err)
		return nil, err
	}
	return roles, nil
}
