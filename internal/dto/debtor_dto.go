package dto

import "github.com/shopspring/decimal"

// RecordPaymentRequest records a repayment against a debtor's balance.
type RecordPaymentRequest struct {
	Name   string          `json:"name" validate:"required"`
	Amount decimal.Decimal `json:"amount" validate:"required,gt=0"`
}

type PaymentResponse struct {
	NewBalance decimal.Decimal `json:"new_balance"`
	PaidInFull bool            `json:"paid_in_full"`
}

type DebtorResponse struct {
	Name         string          `json:"name"`
	Balance      decimal.Decimal `json:"balance"`
	TrustScore   int             `json:"trust_score"`
	LastPurchase *string         `json:"last_purchase,omitempty"`
	LastPayment  *string         `json:"last_payment,omitempty"`
}

type DebtorListResponse struct {
	Debtors   []DebtorResponse `json:"debtors"`
	TotalOwed decimal.Decimal  `json:"total_owed"`
}

// StatementRequest queues a PDF account statement for a debtor.
type StatementRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
}
