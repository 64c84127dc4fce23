package binance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderResponse_ToResult(t *testing.T) {
	t.Run("NothingExecuted", func(t *testing.T) {
		resp := &CreateOrderResponse{OrderID: 7, Symbol: "ETHUSDT", ExecutedQuantity: "0.00000000", CummulativeQuoteQty: "0.00000000", Status: "EXPIRED"}

		result, err := resp.toResult()

		require.NoError(t, err)
		assert.Equal(t, "7", result.OrderID)
		assert.Zero(t, result.AveragePrice)
		assert.Empty(t, result.Fills)
	})

	t.Run("AveragePriceIsRounded", func(t *testing.T) {
		resp := &CreateOrderResponse{ExecutedQuantity: "3", CummulativeQuoteQty: "10"}

		result, err := resp.toResult()

		require.NoError(t, err)
		assert.Equal(t, 3.33333333, result.AveragePrice)
	})

	t.Run("InvalidNumber", func(t *testing.T) {
		resp := &CreateOrderResponse{ExecutedQuantity: "abc"}

		_, err := resp.toResult()

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "executedQty")
	})
}

func TestFormatQuantity(t *testing.T) {
	testCases := []struct {
		quantity float64
		expected string
	}{
		{quantity: 0.5, expected: "0.5"},
		{quantity: 0.00000001, expected: "0.00000001"},
		{quantity: 12, expected: "12"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatQuantity(tc.quantity))
		})
	}
}
