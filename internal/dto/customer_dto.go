package dto

import "github.com/shopspring/decimal"

// RegisterCustomerRequest is the self-registration payload. Accounts start
// unapproved.
type RegisterCustomerRequest struct {
	Phone       string  `json:"phone" validate:"required,min=10"`
	Name        string  `json:"name" validate:"required"`
	HouseNumber string  `json:"house_number"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Password    string  `json:"password" validate:"required,min=6"`
}

// CreditSettingsRequest is the operator's credit control panel for one
// customer. Limit is only honoured together with tier_override.
type CreditSettingsRequest struct {
	CreditEnabled *bool            `json:"credit_enabled"`
	TierOverride  *bool            `json:"tier_override"`
	CreditLimit   *decimal.Decimal `json:"credit_limit" validate:"omitempty,gt=0"`
}

type CustomerResponse struct {
	Phone           string          `json:"phone"`
	Name            string          `json:"name"`
	HouseNumber     string          `json:"house_number"`
	Email           *string         `json:"email,omitempty"`
	Approved        bool            `json:"approved"`
	CreditEnabled   bool            `json:"credit_enabled"`
	CreditLimit     decimal.Decimal `json:"credit_limit"`
	TierOverride    bool            `json:"tier_override"`
	Points          int             `json:"points"`
	Tier            string          `json:"tier"`
	CurrentDebt     decimal.Decimal `json:"current_debt"`
	CreatedAt       string          `json:"created_at"`
}

type PointHistoryEntry struct {
	Delta     int    `json:"delta"`
	Reason    string `json:"reason"`
	CreatedAt string `json:"created_at"`
}

type CustomerDetailResponse struct {
	CustomerResponse
	PointHistory []PointHistoryEntry `json:"point_history"`
}
