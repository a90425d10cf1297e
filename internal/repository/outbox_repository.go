package repository

import (
	"context"
	"time"

	"github.com/shiyas-dx/Project/internal/domain/model"
)

type OutboxRepository interface {
	Enqueue(ctx context.Context, mail *model.EmailOutbox) error
	// ClaimDue leases up to limit pending mails whose next attempt is due,
	// pushing their next attempt to leaseUntil so concurrent workers skip them.
	ClaimDue(ctx context.Context, now time.Time, leaseUntil time.Time, limit int) ([]model.EmailOutbox, error)
	MarkSent(ctx context.Context, id int64, sentAt time.Time) error
	MarkRetry(ctx context.Context, id int64, attempts int, nextAttemptAt time.Time, lastErr string) error
	MarkFailed(ctx context.Context, id int64, attempts int, lastErr string) error
}
