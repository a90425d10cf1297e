package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shiyas-dx/Project/internal/domain/model"
	repo "github.com/shiyas-dx/Project/internal/repository"
)

// writeAudit records an admin action inside the caller's transaction.
func writeAudit(
	ctx context.Context,
	r repo.TxRepos,
	actorID int64,
	action model.AuditAction,
	resource model.AuditResourceType,
	resourceID int64,
	before, after map[string]interface{},
) error {
	entry := model.AuditLog{
		ActorUserID:  actorID,
		Action:       action,
		ResourceType: resource,
		ResourceID:   resourceID,
		BeforeJSON:   marshalSnapshot(before),
		AfterJSON:    marshalSnapshot(after),
		CreatedAt:    time.Now(),
	}
	if err := r.AuditLogs().Create(ctx, entry); err != nil {
		return NewInternalError("db error", err)
	}
	return nil
}

func marshalSnapshot(v map[string]interface{}) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

type AuditLogUsecase struct {
	logs repo.AuditLogRepository
}

func NewAuditLogUsecase(logs repo.AuditLogRepository) *AuditLogUsecase {
	return &AuditLogUsecase{logs: logs}
}

func (u *AuditLogUsecase) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	if f.Limit < 0 || f.Offset < 0 {
		return []model.AuditLog{}, NewHTTPError(http.StatusBadRequest, "invalid paging")
	}
	logs, err := u.logs.List(ctx, f)
	if err != nil {
		return []model.AuditLog{}, NewInternalError("db error", err)
	}
	return logs, nil
}
