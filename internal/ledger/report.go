package ledger

import (
	"time"

	"binance-order-ledger/internal/binance"
	"binance-order-ledger/internal/models"
)

// BuildReport books an execution. A buy opens a position at the average
// price; a sell is recorded as closed at the average price.
func BuildReport(req OrderRequest, side string, exec *binance.OrderResult, now time.Time) *models.OrderReport {
	report := &models.OrderReport{
		ExchangeOrderID: exec.OrderID,
		Symbol:          exec.Symbol,
		Quantity:        exec.ExecutedQuantity,
		OrderKind:       req.OrderKind,
		OperationType:   req.OperationType,
		OperatedAt:      now,
	}

	if side == binance.OrderSideBuy {
		report.PurchasePrice = exec.AveragePrice
		report.Status = models.StatusOpen
	} else {
		report.SalePrice = exec.AveragePrice
		report.Status = models.StatusClosed
	}
	return report
}

// relevantPrice is the sale price once there is one, else the purchase price.
// A sale at exactly zero is indistinguishable from "not sold".
func relevantPrice(r *models.OrderReport) float64 {
	if r.SalePrice > 0 {
		return r.SalePrice
	}
	return r.PurchasePrice
}

func toSummary(r *models.OrderReport) OrderSummary {
	return OrderSummary{
		Symbol:          r.Symbol,
		ExchangeOrderID: r.ExchangeOrderID,
		Quantity:        r.Quantity,
		OrderKind:       r.OrderKind,
		OperationType:   r.OperationType,
		Price:           relevantPrice(r),
		Status:          r.Status,
	}
}

func toOpenSummary(r *models.OrderReport) OpenOrderSummary {
	return OpenOrderSummary{
		LocalID:       r.ID,
		Symbol:        r.Symbol,
		Quantity:      r.Quantity,
		PurchasePrice: r.PurchasePrice,
		OperatedAt:    r.OperatedAt,
		Status:        r.Status,
	}
}
