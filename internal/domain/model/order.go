package model

import "time"

type OrderStatus string

const (
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Shipping details are captured on the order itself, not referenced.
type Order struct {
	ID            int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        int64       `gorm:"not null;index" json:"user_id"`
	TotalAmount   int64       `gorm:"not null" json:"total_amount"`
	PaymentMethod string      `gorm:"type:varchar(50);not null" json:"payment_method"`
	Name          string      `gorm:"type:varchar(255);not null" json:"name"`
	Address       string      `gorm:"type:text;not null" json:"address"`
	Pincode       string      `gorm:"type:varchar(10);not null" json:"pincode"`
	Status        OrderStatus `gorm:"type:varchar(20);not null;default:'PAID';index" json:"status"`
	Items         []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt     time.Time   `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
