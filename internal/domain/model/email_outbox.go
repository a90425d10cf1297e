package model

import "time"

type EmailStatus string

const (
	EmailStatusPending EmailStatus = "PENDING"
	EmailStatusSent    EmailStatus = "SENT"
	EmailStatusFailed  EmailStatus = "FAILED"
)

// EmailOutbox is a mail waiting for delivery. Rows are written in the same
// transaction as the change that triggered them and drained by the outbox worker.
type EmailOutbox struct {
	ID            int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	ToAddress     string      `gorm:"type:varchar(254);not null" json:"to_address"`
	Subject       string      `gorm:"type:varchar(255);not null" json:"subject"`
	Body          string      `gorm:"type:text;not null" json:"body"`
	Status        EmailStatus `gorm:"type:varchar(20);not null;default:'PENDING';index:ix_email_outbox_due,priority:1" json:"status"`
	Attempts      int         `gorm:"not null;default:0" json:"attempts"`
	NextAttemptAt time.Time   `gorm:"not null;index:ix_email_outbox_due,priority:2" json:"next_attempt_at"`
	LastError     string      `gorm:"type:text;not null;default:''" json:"last_error"`
	SentAt        *time.Time  `json:"sent_at"`
	CreatedAt     time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (EmailOutbox) TableName() string {
	return "email_outbox"
}
