package model

import "time"

// Price is the unit price captured when the order was placed and is never recalculated.
type OrderItem struct {
	ID                  int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID             int64     `gorm:"not null;index" json:"order_id"`
	ProductID           int64     `gorm:"not null;index" json:"product_id"`
	ProductNameSnapshot string    `gorm:"type:varchar(255);not null;default:''" json:"product_name_snapshot"`
	Quantity            int64     `gorm:"not null" json:"quantity"`
	Price               int64     `gorm:"not null" json:"price"`
	CreatedAt           time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
