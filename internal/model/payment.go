package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment is an append-only record of a debt repayment. Previous and new
// balances are captured at write time so the log stays meaningful after
// the debtor row is deleted.
type Payment struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Customer        string          `gorm:"not null;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PreviousBalance decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	NewBalance      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt       time.Time       `gorm:"index"`
}

// PointHistory is an append-only log of loyalty point changes.
type PointHistory struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Customer  string    `gorm:"not null;index"`
	Delta     int       `gorm:"not null"`
	Reason    string    `gorm:"not null"`
	CreatedAt time.Time
}
