package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/shiyas-dx/Project/internal/domain/model"
	"github.com/shiyas-dx/Project/internal/mailer"
	repo "github.com/shiyas-dx/Project/internal/repository"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const (
	baseBackoff = 30 * time.Second
	maxBackoff  = time.Hour
	claimLease  = 5 * time.Minute
)

// DeliveryObserver is told about every delivery attempt.
type DeliveryObserver interface {
	EmailDelivered(ok bool)
}

type EmailOutboxWorker struct {
	outbox      repo.OutboxRepository
	mailer      mailer.Mailer
	log         logrus.FieldLogger
	observer    DeliveryObserver
	maxAttempts int
	batchSize   int
	now         func() time.Time

	cron *cron.Cron
}

func NewEmailOutboxWorker(
	outbox repo.OutboxRepository,
	m mailer.Mailer,
	log logrus.FieldLogger,
	observer DeliveryObserver,
	maxAttempts int,
	batchSize int,
) *EmailOutboxWorker {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if batchSize < 1 {
		batchSize = 20
	}
	return &EmailOutboxWorker{
		outbox:      outbox,
		mailer:      m,
		log:         log,
		observer:    observer,
		maxAttempts: maxAttempts,
		batchSize:   batchSize,
		now:         time.Now,
	}
}

// Start drains the outbox every interval until Stop is called.
func (w *EmailOutboxWorker) Start(interval time.Duration) error {
	logger := cron.PrintfLogger(w.log)
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		ctx, cancel := context.WithTimeout(context.Background(), interval+claimLease)
		defer cancel()
		w.RunOnce(ctx)
	}); err != nil {
		return err
	}
	w.cron = c
	c.Start()
	return nil
}

// Stop waits for a running drain to finish or ctx to expire.
func (w *EmailOutboxWorker) Stop(ctx context.Context) {
	if w.cron == nil {
		return
	}
	select {
	case <-w.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// RunOnce claims one batch of due mails and attempts each of them.
func (w *EmailOutboxWorker) RunOnce(ctx context.Context) (sent int, failed int) {
	now := w.now()
	mails, err := w.outbox.ClaimDue(ctx, now, now.Add(claimLease), w.batchSize)
	if err != nil {
		w.log.WithError(err).Error("claim outbox mails")
		return 0, 0
	}

	for _, m := range mails {
		if w.deliver(ctx, m) {
			sent++
		} else {
			failed++
		}
	}
	return sent, failed
}

func (w *EmailOutboxWorker) deliver(ctx context.Context, m model.EmailOutbox) bool {
	log := w.log.WithFields(logrus.Fields{"outbox_id": m.ID, "attempt": m.Attempts + 1})

	err := w.mailer.Send(ctx, mailer.Message{To: m.ToAddress, Subject: m.Subject, Body: m.Body})
	w.observe(err == nil)

	if err == nil {
		if err := w.outbox.MarkSent(ctx, m.ID, w.now()); err != nil {
			log.WithError(err).Error("mark outbox mail sent")
		}
		return true
	}

	attempts := m.Attempts + 1
	if attempts >= w.maxAttempts {
		log.WithError(err).Error("giving up on outbox mail")
		if err := w.outbox.MarkFailed(ctx, m.ID, attempts, err.Error()); err != nil {
			log.WithError(err).Error("mark outbox mail failed")
		}
		return false
	}

	next := w.now().Add(Backoff(attempts))
	log.WithError(err).WithField("next_attempt_at", next).Warn("outbox mail delivery failed, will retry")
	if err := w.outbox.MarkRetry(ctx, m.ID, attempts, next, err.Error()); err != nil {
		log.WithError(err).Error("schedule outbox retry")
	}
	return false
}

func (w *EmailOutboxWorker) observe(ok bool) {
	if w.observer != nil {
		w.observer.EmailDelivered(ok)
	}
}

// Backoff returns the delay before the given retry: 30s doubling up to one hour.
func Backoff(attempts int) time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	d := baseBackoff
	for i := 1; i < attempts; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
