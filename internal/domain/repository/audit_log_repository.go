package repository

import (
	"context"

	"clinic-backend/internal/domain/entity"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	FindRecent(ctx context.Context, limit, offset int) ([]entity.AuditLog, int64, error)
}
