package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is an append-only business outgoing (airtime, transport, etc.).
// Source: "business" | "personal".
type Expense struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Description string          `gorm:"not null"`
	Source      string          `gorm:"type:varchar(10);not null;default:'business'"`
	SpentAt     time.Time       `gorm:"index"`
	CreatedAt   time.Time
}

// Injection is an append-only record of personal cash put into the business.
type Injection struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Description string          `gorm:"not null"`
	InjectedAt  time.Time       `gorm:"index"`
	CreatedAt   time.Time
}

// Settings is the singleton goals row, overwritten on update.
type Settings struct {
	ID          int             `gorm:"primaryKey"`
	DailyGoal   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	MonthlyGoal decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	UpdatedAt   time.Time
}
