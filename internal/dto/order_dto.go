package dto

import "github.com/shopspring/decimal"

type OrderItemRequest struct {
	Item string `json:"item" validate:"required,oneof=loose pack"`
	Qty  int    `json:"qty" validate:"required,gt=0"`
}

// PlaceOrderRequest is submitted by a customer. The total is computed
// server-side from the price table; any client total is ignored.
type PlaceOrderRequest struct {
	Method string             `json:"method" validate:"required,oneof=cash credit"`
	Items  []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type OrderItemResponse struct {
	Item      string          `json:"item"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type OrderResponse struct {
	ID            string              `json:"id"`
	CustomerPhone string              `json:"customer_phone"`
	CustomerName  string              `json:"customer_name"`
	Method        string              `json:"method"`
	Status        string              `json:"status"`
	Total         decimal.Decimal     `json:"total"`
	Items         []OrderItemResponse `json:"items"`
	CreatedAt     string              `json:"created_at"`
}
