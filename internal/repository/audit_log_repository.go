package repository

import (
	"context"
	"time"

	"github.com/shiyas-dx/Project/internal/domain/model"
)

// AuditLogFilter narrows the audit log listing.
type AuditLogFilter struct {
	ActorUserID  *int64
	Action       *model.AuditAction
	ResourceType *model.AuditResourceType
	ResourceID   *int64
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	Limit        int
	Offset       int
}

type AuditLogRepository interface {
	// Create stores one entry.
	Create(ctx context.Context, log model.AuditLog) error

	// List returns entries newest-first.
	List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, error)
}
