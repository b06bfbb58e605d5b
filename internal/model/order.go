package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order statuses. pending → approved → completed, or pending/approved → rejected.
const (
	OrderPending   = "pending"
	OrderApproved  = "approved"
	OrderCompleted = "completed"
	OrderRejected  = "rejected"
)

// Order is a customer-placed purchase request. Completing an order records
// one Sale per line item under the customer's name.
type Order struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerPhone string          `gorm:"not null;index"`
	CustomerName  string          `gorm:"not null"`
	Method        string          `gorm:"type:varchar(10);not null"`
	Status        string          `gorm:"type:varchar(10);not null;default:'pending';index"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Items []OrderItem `gorm:"foreignKey:OrderID"`
}

// OrderItem is one line of an order. Qty is in purchase units (packs or
// loose sticks), not sticks; UnitPrice is fixed at submission time.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemType  string          `gorm:"type:varchar(10);not null"`
	Qty       int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}
