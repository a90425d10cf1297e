package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shiyas-dx/Project/internal/domain/model"
	"github.com/shiyas-dx/Project/internal/mailer"
	repo "github.com/shiyas-dx/Project/internal/repository"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type OutboxMock struct {
	mock.Mock
}

func (m *OutboxMock) Enqueue(ctx context.Context, mail *model.EmailOutbox) error {
	return m.Called(ctx, mail).Error(0)
}

func (m *OutboxMock) ClaimDue(ctx context.Context, now time.Time, leaseUntil time.Time, limit int) ([]model.EmailOutbox, error) {
	args := m.Called(ctx, now, leaseUntil, limit)
	ms, _ := args.Get(0).([]model.EmailOutbox)
	return ms, args.Error(1)
}

func (m *OutboxMock) MarkSent(ctx context.Context, id int64, sentAt time.Time) error {
	return m.Called(ctx, id, sentAt).Error(0)
}

func (m *OutboxMock) MarkRetry(ctx context.Context, id int64, attempts int, next time.Time, lastErr string) error {
	return m.Called(ctx, id, attempts, next, lastErr).Error(0)
}

func (m *OutboxMock) MarkFailed(ctx context.Context, id int64, attempts int, lastErr string) error {
	return m.Called(ctx, id, attempts, lastErr).Error(0)
}

var _ repo.OutboxRepository = (*OutboxMock)(nil)

// scriptedMailer fails for the addresses listed in fail.
type scriptedMailer struct {
	fail map[string]bool
	sent []mailer.Message
}

func (s *scriptedMailer) Send(_ context.Context, m mailer.Message) error {
	if s.fail[m.To] {
		return errors.New("smtp: 421 try later")
	}
	s.sent = append(s.sent, m)
	return nil
}

type countingObserver struct{ ok, bad int }

func (o *countingObserver) EmailDelivered(ok bool) {
	if ok {
		o.ok++
	} else {
		o.bad++
	}
}

func TestRunOnce(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	outbox := &OutboxMock{}
	m := &scriptedMailer{fail: map[string]bool{"retry@example.com": true, "dead@example.com": true}}
	obs := &countingObserver{}
	log, _ := test.NewNullLogger()

	w := NewEmailOutboxWorker(outbox, m, log, obs, 3, 10)
	w.now = func() time.Time { return now }

	outbox.On("ClaimDue", mock.Anything, now, now.Add(claimLease), 10).Return([]model.EmailOutbox{
		{ID: 1, ToAddress: "ok@example.com", Subject: "hi"},
		{ID: 2, ToAddress: "retry@example.com", Attempts: 1},
		{ID: 3, ToAddress: "dead@example.com", Attempts: 2},
	}, nil)
	outbox.On("MarkSent", mock.Anything, int64(1), now).Return(nil)
	outbox.On("MarkRetry", mock.Anything, int64(2), 2, now.Add(time.Minute), "smtp: 421 try later").Return(nil)
	outbox.On("MarkFailed", mock.Anything, int64(3), 3, "smtp: 421 try later").Return(nil)

	sent, failed := w.RunOnce(context.Background())
	assert.Equal(t, 1, sent)
	assert.Equal(t, 2, failed)
	require.Len(t, m.sent, 1)
	assert.Equal(t, "hi", m.sent[0].Subject)
	assert.Equal(t, 1, obs.ok)
	assert.Equal(t, 2, obs.bad)
	outbox.AssertExpectations(t)
}

func TestRunOnce_ClaimError(t *testing.T) {
	outbox := &OutboxMock{}
	log, hook := test.NewNullLogger()
	w := NewEmailOutboxWorker(outbox, &scriptedMailer{}, log, nil, 3, 10)

	outbox.On("ClaimDue", mock.Anything, mock.Anything, mock.Anything, 10).Return(nil, errors.New("db down"))

	sent, failed := w.RunOnce(context.Background())
	assert.Zero(t, sent)
	assert.Zero(t, failed)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "claim outbox mails", hook.LastEntry().Message)
}

func TestBackoff(t *testing.T) {
	tests := []struct {
		attempts int
		want     time.Duration
	}{
		{0, 30 * time.Second},
		{1, 30 * time.Second},
		{2, time.Minute},
		{3, 2 * time.Minute},
		{7, 32 * time.Minute},
		{8, time.Hour},
		{50, time.Hour},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Backoff(tt.attempts), "attempts=%d", tt.attempts)
	}
}

func TestStartStop(t *testing.T) {
	outbox := &OutboxMock{}
	log, _ := test.NewNullLogger()
	w := NewEmailOutboxWorker(outbox, &scriptedMailer{}, log, nil, 3, 10)

	require.NoError(t, w.Start(time.Hour))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	w.Stop(ctx)
	outbox.AssertNotCalled(t, "ClaimDue", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
