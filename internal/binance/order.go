package binance

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// priceScale is the number of decimals kept when deriving an average price.
const priceScale = 8

// CreateOrderResponse represents the FULL response from creating a new order.
type CreateOrderResponse struct {
	Symbol              string      `json:"symbol"`
	OrderID             int64       `json:"orderId"`
	ClientOrderID       string      `json:"clientOrderId"`
	TransactTime        int64       `json:"transactTime"`
	Price               string      `json:"price"`
	OrigQuantity        string      `json:"origQty"`
	ExecutedQuantity    string      `json:"executedQty"`
	CummulativeQuoteQty string      `json:"cummulativeQuoteQty"`
	Status              string      `json:"status"`
	TimeInForce         string      `json:"timeInForce"`
	Type                string      `json:"type"`
	Side                string      `json:"side"`
	Fills               []OrderFill `json:"fills"`
}

// OrderFill is a single trade that (partially) filled an order, as sent by Binance.
type OrderFill struct {
	Price           string `json:"price"`
	Quantity        string `json:"qty"`
	Commission      string `json:"commission"`
	CommissionAsset string `json:"commissionAsset"`
	TradeID         int64  `json:"tradeId"`
}

// OrderResult is the parsed outcome of a market order.
type OrderResult struct {
	OrderID          string  `json:"order_id"`
	Symbol           string  `json:"symbol"`
	ExecutedQuantity float64 `json:"executed_quantity"`
	AveragePrice     float64 `json:"average_price"`
	Status           string  `json:"status"`
	Fills            []Fill  `json:"fills"`
}

// Fill is a parsed OrderFill.
type Fill struct {
	Price           float64 `json:"price"`
	Quantity        float64 `json:"quantity"`
	Commission      float64 `json:"commission"`
	CommissionAsset string  `json:"commission_asset"`
	TradeID         int64   `json:"trade_id"`
}

func (r *CreateOrderResponse) toResult() (*OrderResult, error) {
	executed, err := parseDecimal("executedQty", r.ExecutedQuantity)
	if err != nil {
		return nil, err
	}
	quote, err := parseDecimal("cummulativeQuoteQty", r.CummulativeQuoteQty)
	if err != nil {
		return nil, err
	}

	fills := make([]Fill, 0, len(r.Fills))
	for _, f := range r.Fills {
		price, err := parseDecimal("fill price", f.Price)
		if err != nil {
			return nil, err
		}
		qty, err := parseDecimal("fill qty", f.Quantity)
		if err != nil {
			return nil, err
		}
		commission, err := parseDecimal("fill commission", f.Commission)
		if err != nil {
			return nil, err
		}
		fills = append(fills, Fill{
			Price:           price.InexactFloat64(),
			Quantity:        qty.InexactFloat64(),
			Commission:      commission.InexactFloat64(),
			CommissionAsset: f.CommissionAsset,
			TradeID:         f.TradeID,
		})
	}

	return &OrderResult{
		OrderID:          strconv.FormatInt(r.OrderID, 10),
		Symbol:           r.Symbol,
		ExecutedQuantity: executed.InexactFloat64(),
		AveragePrice:     averagePrice(executed, quote).InexactFloat64(),
		Status:           r.Status,
		Fills:            fills,
	}, nil
}

// averagePrice is quote spent (or received) per unit of base executed.
func averagePrice(executed, quote decimal.Decimal) decimal.Decimal {
	if !executed.IsPositive() {
		return decimal.Zero
	}
	return quote.DivRound(executed, priceScale)
}

func parseDecimal(field, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	return d, nil
}

// FormatQuantity renders a quantity without float noise or exponent notation.
func FormatQuantity(quantity float64) string {
	return decimal.NewFromFloat(quantity).String()
}
