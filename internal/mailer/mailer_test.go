package mailer

import (
	"context"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	raw := string(buildMessage("Store <no-reply@store.test>", "<ada@example.com>", Message{
		Subject: "Hello\r\nBcc: evil@example.com",
		Body:    "line one\nline two",
	}, now))

	head, body, ok := strings.Cut(raw, "\r\n\r\n")
	require.True(t, ok)
	assert.Contains(t, head, "From: Store <no-reply@store.test>\r\n")
	assert.Contains(t, head, "Subject: Hello  Bcc: evil@example.com\r\n")
	assert.NotContains(t, head, "\r\nBcc:")
	assert.Contains(t, head, "Content-Type: text/plain; charset=UTF-8")
	assert.Equal(t, "line one\r\nline two", body)
}

func TestSMTPMailer_Send(t *testing.T) {
	m := NewSMTPMailer("smtp.test", 2525, "user", "pw", "Store <no-reply@store.test>")

	var gotAddr, gotFrom string
	var gotTo []string
	m.send = func(addr string, _ smtp.Auth, from string, to []string, _ []byte) error {
		gotAddr, gotFrom, gotTo = addr, from, to
		return nil
	}

	require.NoError(t, m.Send(context.Background(), Message{To: "ada@example.com", Subject: "hi", Body: "x"}))
	assert.Equal(t, "smtp.test:2525", gotAddr)
	assert.Equal(t, "no-reply@store.test", gotFrom)
	assert.Equal(t, []string{"ada@example.com"}, gotTo)
}

func TestSMTPMailer_RejectsBadRecipient(t *testing.T) {
	m := NewSMTPMailer("smtp.test", 25, "", "", "no-reply@store.test")
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send must not be called")
		return nil
	}
	assert.Error(t, m.Send(context.Background(), Message{To: "not an address"}))
}

func TestSMTPMailer_CancelledContext(t *testing.T) {
	m := NewSMTPMailer("smtp.test", 25, "", "", "no-reply@store.test")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.Send(ctx, Message{To: "ada@example.com"}), context.Canceled)
}

func TestLogMailer(t *testing.T) {
	log, hook := test.NewNullLogger()
	require.NoError(t, NewLogMailer(log).Send(context.Background(), Message{To: "ada@example.com", Subject: "hi", Body: "body"}))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "ada@example.com", entry.Data["to"])
	assert.Contains(t, entry.Message, "body")
}
