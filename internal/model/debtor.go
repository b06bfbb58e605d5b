package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Debtor is a customer with outstanding credit, keyed by name.
// A debtor row exists if and only if the balance is nonzero: paying a
// balance down to exactly zero deletes the row rather than zeroing it.
type Debtor struct {
	Name         string          `gorm:"primaryKey"`
	Balance      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TrustScore   int             `gorm:"not null;default:50"`
	LastPurchase *time.Time
	LastPayment  *time.Time
	CreatedAt    time.Time
}
