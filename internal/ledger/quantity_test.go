package ledger

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestResolveQuantity(t *testing.T) {
	testCases := []struct {
		name      string
		requested *float64
		limit     *float64
		expected  float64
		expectErr error
	}{
		{name: "absent with limit uses limit", requested: nil, limit: ptr(50), expected: 50},
		{name: "zero with limit uses limit", requested: ptr(0), limit: ptr(50), expected: 50},
		{name: "negative with limit uses limit", requested: ptr(-5), limit: ptr(50), expected: 50},
		{name: "below limit kept", requested: ptr(10), limit: ptr(50), expected: 10},
		{name: "equal to limit kept", requested: ptr(50), limit: ptr(50), expected: 50},
		{name: "above limit rejected", requested: ptr(100), limit: ptr(50), expectErr: ErrQuantityExceedsLimit},
		{name: "absent without limit rejected", requested: nil, limit: nil, expectErr: ErrQuantityRequired},
		{name: "zero without limit rejected", requested: ptr(0), limit: nil, expectErr: ErrQuantityRequired},
		{name: "negative without limit rejected", requested: ptr(-5), limit: nil, expectErr: ErrQuantityRequired},
		{name: "positive without limit kept", requested: ptr(10), limit: nil, expected: 10},
		{name: "large without limit kept", requested: ptr(100), limit: nil, expected: 100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			quantity, err := ResolveQuantity(tc.requested, tc.limit)

			if tc.expectErr != nil {
				assert.ErrorIs(t, err, tc.expectErr)
				assert.Zero(t, quantity)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, quantity)
		})
	}
}

func TestResolveQuantity_LimitErrorCarriesValues(t *testing.T) {
	_, err := ResolveQuantity(ptr(100), ptr(50))

	var limitErr *QuantityLimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, 100.0, limitErr.Requested)
	assert.Equal(t, 50.0, limitErr.Limit)
	assert.Contains(t, err.Error(), "50")
}

func TestResolveQuantity_IsTotal(t *testing.T) {
	requests := []*float64{nil, ptr(0), ptr(-5), ptr(10), ptr(30), ptr(100)}
	limits := []*float64{nil, ptr(50)}

	for _, r := range requests {
		for _, l := range limits {
			t.Run(fmt.Sprintf("%v/%v", deref(r), deref(l)), func(t *testing.T) {
				quantity, err := ResolveQuantity(r, l)
				if err == nil {
					assert.Greater(t, quantity, 0.0)
					return
				}
				assert.True(t, errors.Is(err, ErrQuantityExceedsLimit) || errors.Is(err, ErrQuantityRequired), "unexpected error %v", err)
			})
		}
	}
}

func deref(v *float64) string {
	if v == nil {
		return "absent"
	}
	return fmt.Sprintf("%g", *v)
}
