package ledger

import (
	"strings"

	"binance-order-ledger/internal/binance"
)

// Operation labels accepted from clients.
const (
	OperationBuy  = "COMPRA"
	OperationSell = "VENDA"
)

// TranslateOperation maps an operation label to the Binance order side.
// Labels are matched case-insensitively.
func TranslateOperation(operation string) (string, error) {
	switch {
	case strings.EqualFold(operation, OperationBuy):
		return binance.OrderSideBuy, nil
	case strings.EqualFold(operation, OperationSell):
		return binance.OrderSideSell, nil
	default:
		return "", &InvalidOperationError{Value: operation}
	}
}
