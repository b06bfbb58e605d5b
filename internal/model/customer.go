package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loyalty tiers, ordered new < regular < trusted.
const (
	TierNew     = "new"
	TierRegular = "regular"
	TierTrusted = "trusted"
)

// Customer is a registered account keyed by phone number. Accounts are
// created unapproved by self-registration and must be approved by the
// operator before they can order or buy on credit.
type Customer struct {
	Phone        string `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	HouseNumber  string
	Email        *string
	PasswordHash string `gorm:"not null"`
	Approved     bool   `gorm:"not null;default:false"`

	// Credit settings
	CreditEnabled bool            `gorm:"not null;default:false"`
	CreditLimit   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:80"`
	// TierOverride pins CreditLimit against automatic tier recalculation.
	TierOverride bool `gorm:"not null;default:false"`

	// Loyalty
	Points int    `gorm:"not null;default:0"`
	Tier   string `gorm:"type:varchar(10);not null;default:'new'"`

	// Debt tracking. DebtAtLastCheck and LastDebtCheck are the baselines
	// for the overdue penalty sweep.
	CurrentDebt     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	DebtAtLastCheck decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	LastDebtCheck   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
