package ledger

import (
	"strings"

	"binance-order-ledger/internal/models"
)

// MatchOpenPosition closes the first open report for symbol, scanning in
// ledger order, at salePrice. It returns the closed report, or nil when the
// user holds no open position in symbol.
func MatchOpenPosition(reports []models.OrderReport, symbol string, salePrice float64) *models.OrderReport {
	for i := range reports {
		r := &reports[i]
		if strings.EqualFold(r.Symbol, symbol) && r.IsOpen() {
			r.SalePrice = salePrice
			r.Status = models.StatusClosed
			return r
		}
	}
	return nil
}
