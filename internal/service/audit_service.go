package service

import (
	"context"

	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AuditRecorder writes audit trail entries. Recording failures are logged and
// swallowed so an unavailable audit table never fails the business operation.
type AuditRecorder interface {
	Record(ctx context.Context, userID *uuid.UUID, action string, metadata entity.JSON)
}

type auditRecorder struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditRecorder(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditRecorder {
	return &auditRecorder{log: log, auditRepo: auditRepo}
}

func (s *auditRecorder) Record(ctx context.Context, userID *uuid.UUID, action string, metadata entity.JSON) {
	auditLog := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		s.log.Warnf("Failed to write audit log for action %s: %+v", action, err)
	}
}

// NopAuditRecorder discards every entry; used by the seeder and tests.
type NopAuditRecorder struct{}

func (NopAuditRecorder) Record(context.Context, *uuid.UUID, string, entity.JSON) {}
