package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Report lifecycle statuses.
const (
	StatusOpen   = "OPEN"   // bought, not yet sold
	StatusClosed = "CLOSED" // sold, or matched to a later sale
)

// OrderReport is one executed exchange order booked in a user's ledger.
// The embedded ID is the local identifier; ExchangeOrderID is Binance's.
type OrderReport struct {
	gorm.Model
	UserID          uint      `gorm:"index;not null" json:"user_id"`
	ExchangeOrderID string    `gorm:"index" json:"exchange_order_id"`
	Symbol          string    `gorm:"not null" json:"symbol"`
	Quantity        float64   `json:"quantity"`
	OrderKind       string    `json:"order_kind"`     // e.g. "MERCADO" or "LIMITE", as requested
	OperationType   string    `json:"operation_type"` // "COMPRA" or "VENDA", as requested
	PurchasePrice   float64   `json:"purchase_price"` // set on buy only
	SalePrice       float64   `json:"sale_price"`     // set on sale only
	Status          string    `gorm:"size:16;not null" json:"status"`
	OperatedAt      time.Time `json:"operated_at"`
}

// IsOpen reports whether the position is still held.
func (r *OrderReport) IsOpen() bool {
	return strings.EqualFold(r.Status, StatusOpen)
}
