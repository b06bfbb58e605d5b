package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockEntry records a wholesale bundle purchase. Each bundle costs R145.00
// and yields 200 sticks. SticksSold and the revenue split are maintained by
// FIFO allocation as sales come in; SticksSold ≤ Sticks is not enforced by
// the schema.
// Source: "business" | "personal" — which pocket paid for the purchase.
type StockEntry struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Bundles       int             `gorm:"not null"`
	Sticks        int             `gorm:"not null"`
	Cost          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	SticksSold    int             `gorm:"not null;default:0"`
	RevenueCash   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	RevenueCredit decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Source        string          `gorm:"type:varchar(10);not null;default:'business'"`
	Note          string
	PurchasedAt   time.Time `gorm:"index"`
	CreatedAt     time.Time
}
