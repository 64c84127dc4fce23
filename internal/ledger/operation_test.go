package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateOperation(t *testing.T) {
	testCases := []struct {
		operation    string
		expectedSide string
		expectError  bool
	}{
		{operation: "COMPRA", expectedSide: "BUY"},
		{operation: "compra", expectedSide: "BUY"},
		{operation: "Compra", expectedSide: "BUY"},
		{operation: "VENDA", expectedSide: "SELL"},
		{operation: "venda", expectedSide: "SELL"},
		{operation: "HOLD", expectError: true},
		{operation: "BUY", expectError: true},
		{operation: "", expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.operation, func(t *testing.T) {
			side, err := TranslateOperation(tc.operation)

			if tc.expectError {
				require.ErrorIs(t, err, ErrInvalidOperationType)
				var opErr *InvalidOperationError
				require.ErrorAs(t, err, &opErr)
				assert.Equal(t, tc.operation, opErr.Value)
				assert.Empty(t, side)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expectedSide, side)
		})
	}
}
