package dto

import "github.com/shopspring/decimal"

// AddStockRequest records a wholesale bundle purchase. Date is optional
// YYYY-MM-DD; empty means today.
type AddStockRequest struct {
	Bundles int    `json:"bundles" validate:"required,gt=0"`
	Source  string `json:"source" validate:"omitempty,oneof=business personal"`
	Note    string `json:"note"`
	Date    string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type StockEntryResponse struct {
	ID            string          `json:"id"`
	Bundles       int             `json:"bundles"`
	Sticks        int             `json:"sticks"`
	Cost          decimal.Decimal `json:"cost"`
	SticksSold    int             `json:"sticks_sold"`
	RevenueCash   decimal.Decimal `json:"revenue_cash"`
	RevenueCredit decimal.Decimal `json:"revenue_credit"`
	Source        string          `json:"source"`
	Note          string          `json:"note"`
	PurchasedAt   string          `json:"purchased_at"`
}

// MonthlyStockGroup groups purchases under a "January 2006" style label.
type MonthlyStockGroup struct {
	Month   string               `json:"month"`
	Bundles int                  `json:"bundles"`
	Cost    decimal.Decimal      `json:"cost"`
	Entries []StockEntryResponse `json:"entries"`
}

type StockOverviewResponse struct {
	Entries         []StockEntryResponse `json:"entries"`
	Monthly         []MonthlyStockGroup  `json:"monthly"`
	TotalBundles    int                  `json:"total_bundles"`
	TotalSpent      decimal.Decimal      `json:"total_spent"`
	TotalSticks     int64                `json:"total_sticks"`
	SticksSold      int64                `json:"sticks_sold"`
	SticksRemaining int64                `json:"sticks_remaining"`
	AlertLevel      string               `json:"alert_level"`
}
