package repository

import (
	"context"
	"time"

	"github.com/shiyas-dx/Project/internal/domain/model"
	repo "github.com/shiyas-dx/Project/internal/repository"

	"gorm.io/gorm"
)

type OutboxGormRepository struct {
	db *gorm.DB
}

func NewOutboxGormRepository(db *gorm.DB) *OutboxGormRepository {
	return &OutboxGormRepository{db: db}
}

func (r *OutboxGormRepository) Enqueue(ctx context.Context, mail *model.EmailOutbox) error {
	if mail.Status == "" {
		mail.Status = model.EmailStatusPending
	}
	if mail.NextAttemptAt.IsZero() {
		mail.NextAttemptAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(mail).Error
}

const claimDueSQL = `
UPDATE email_outbox SET next_attempt_at = ?, updated_at = ?
WHERE id IN (
	SELECT id FROM email_outbox
	WHERE status = ? AND next_attempt_at <= ?
	ORDER BY id
	LIMIT ?
	FOR UPDATE SKIP LOCKED
)
RETURNING *`

func (r *OutboxGormRepository) ClaimDue(ctx context.Context, now time.Time, leaseUntil time.Time, limit int) ([]model.EmailOutbox, error) {
	if limit <= 0 {
		limit = 20
	}
	mails := []model.EmailOutbox{}
	err := r.db.WithContext(ctx).
		Raw(claimDueSQL, leaseUntil, now, model.EmailStatusPending, now, limit).
		Scan(&mails).Error
	if err != nil {
		return []model.EmailOutbox{}, err
	}
	return mails, nil
}

func (r *OutboxGormRepository) MarkSent(ctx context.Context, id int64, sentAt time.Time) error {
	return r.update(ctx, id, map[string]interface{}{
		"status":     model.EmailStatusSent,
		"sent_at":    sentAt,
		"last_error": "",
	})
}

func (r *OutboxGormRepository) MarkRetry(ctx context.Context, id int64, attempts int, nextAttemptAt time.Time, lastErr string) error {
	return r.update(ctx, id, map[string]interface{}{
		"attempts":        attempts,
		"next_attempt_at": nextAttemptAt,
		"last_error":      lastErr,
	})
}

func (r *OutboxGormRepository) MarkFailed(ctx context.Context, id int64, attempts int, lastErr string) error {
	return r.update(ctx, id, map[string]interface{}{
		"status":     model.EmailStatusFailed,
		"attempts":   attempts,
		"last_error": lastErr,
	})
}

func (r *OutboxGormRepository) update(ctx context.Context, id int64, cols map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&model.EmailOutbox{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
