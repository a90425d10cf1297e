package model

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Description and Category hold arbitrary JSON documents.
// Price is stored in the smallest currency unit.
type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Specs       string          `gorm:"type:text;not null;default:''" json:"specs"`
	Description json.RawMessage `gorm:"type:jsonb;not null;default:'{}'" json:"description"`
	Brand       string          `gorm:"type:varchar(255);not null;default:''" json:"brand"`
	Category    json.RawMessage `gorm:"type:jsonb;not null;default:'[]'" json:"category"`
	Price       int64           `gorm:"not null" json:"price"`
	Rating      float64         `gorm:"not null;default:0" json:"rating"`
	Quantity    int64           `gorm:"not null;default:0" json:"quantity"`
	Image       string          `gorm:"type:varchar(1024);not null;default:''" json:"image"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}
