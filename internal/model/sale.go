package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is a single cash or credit transaction. Qty is always measured in
// sticks: a pack sale of 2 packs stores Qty=40.
// Method: "cash" | "credit". ItemType: "loose" | "pack".
type Sale struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Qty      int             `gorm:"not null"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Method   string          `gorm:"type:varchar(10);not null;index"`
	Customer string          `gorm:"not null;index"`
	ItemType string          `gorm:"type:varchar(10);not null"`
	// OrderID links sales created by completing a customer order.
	OrderID   *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time  `gorm:"index"`
}
