package dto

import "github.com/shopspring/decimal"

// RecordSaleRequest registers a cash or credit sale. Qty is in purchase
// units: packs for item=pack, sticks for item=loose.
type RecordSaleRequest struct {
	Item     string `json:"item" validate:"required,oneof=loose pack"`
	Qty      int    `json:"qty" validate:"required,gt=0"`
	Method   string `json:"method" validate:"required,oneof=cash credit"`
	Customer string `json:"customer"`
}

type SaleResponse struct {
	ID         string          `json:"id"`
	Item       string          `json:"item"`
	Qty        int             `json:"qty"`
	Sticks     int             `json:"sticks"`
	Method     string          `json:"method"`
	Customer   string          `json:"customer"`
	Price      decimal.Decimal `json:"price"`
	ProfitMade decimal.Decimal `json:"profit_made"`
	// NewBalance is the debtor balance after a credit sale; zero for cash.
	NewBalance decimal.Decimal `json:"new_balance"`
	CreatedAt  string          `json:"created_at"`
}

// SaleHistoryItem is one row of the sales history listing.
type SaleHistoryItem struct {
	ID        string          `json:"id"`
	Item      string          `json:"item"`
	Qty       int             `json:"qty"`
	Method    string          `json:"method"`
	Customer  string          `json:"customer"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt string          `json:"created_at"`
}

// RecentTransaction is a dashboard row with a humanized timestamp.
type RecentTransaction struct {
	ID       string          `json:"id"`
	Customer string          `json:"customer"`
	Method   string          `json:"method"`
	ItemType string          `json:"item_type"`
	Price    decimal.Decimal `json:"price"`
	Qty      int             `json:"qty"`
	Profit   decimal.Decimal `json:"profit"`
	TimeAgo  string          `json:"time_ago"`
}
