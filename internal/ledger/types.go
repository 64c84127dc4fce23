package ledger

import (
	"time"

	"binance-order-ledger/internal/binance"
)

// OrderRequest asks for one market order. A nil or non-positive Quantity
// means "use the user's configured default".
type OrderRequest struct {
	Symbol        string   `json:"symbol" binding:"required"`
	OperationType string   `json:"operation_type" binding:"required"`
	OrderKind     string   `json:"order_kind"`
	Quantity      *float64 `json:"quantity"`
}

// PlacedOrder summarizes an executed and booked order.
type PlacedOrder struct {
	Message          string         `json:"message"`
	ExchangeOrderID  string         `json:"exchange_order_id"`
	Symbol           string         `json:"symbol"`
	OrderKind        string         `json:"order_kind"`
	OperationType    string         `json:"operation_type"`
	ExecutedQuantity float64        `json:"executed_quantity"`
	AveragePrice     float64        `json:"average_price"`
	Status           string         `json:"status"`
	Fills            []binance.Fill `json:"fills"`
}

// OrderSummary describes one booked report. Fills are not stored, so they
// are always nil here.
type OrderSummary struct {
	Symbol          string         `json:"symbol"`
	ExchangeOrderID string         `json:"exchange_order_id"`
	Quantity        float64        `json:"quantity"`
	OrderKind       string         `json:"order_kind"`
	OperationType   string         `json:"operation_type"`
	Price           float64        `json:"price"`
	Status          string         `json:"status"`
	Fills           []binance.Fill `json:"fills"`
}

// OrderList is every report of a user, in ledger order.
type OrderList struct {
	Total  int            `json:"total"`
	Orders []OrderSummary `json:"orders"`
}

// OpenOrderSummary describes a position that is still held.
type OpenOrderSummary struct {
	LocalID       uint      `json:"local_id"`
	Symbol        string    `json:"symbol"`
	Quantity      float64   `json:"quantity"`
	PurchasePrice float64   `json:"purchase_price"`
	OperatedAt    time.Time `json:"operated_at"`
	Status        string    `json:"status"`
}

// OpenOrderList is every open position of a user, in ledger order.
type OpenOrderList struct {
	Total  int                `json:"total"`
	Orders []OpenOrderSummary `json:"orders"`
}
