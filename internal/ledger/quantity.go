package ledger

// ResolveQuantity picks the quantity to send to the exchange. A configured
// limit is both the ceiling and the default for a missing or non-positive
// request; without a limit the request must carry a positive quantity.
func ResolveQuantity(requested, limit *float64) (float64, error) {
	hasRequest := requested != nil && *requested > 0

	if limit != nil {
		if !hasRequest {
			return *limit, nil
		}
		if *requested > *limit {
			return 0, &QuantityLimitError{Requested: *requested, Limit: *limit}
		}
		return *requested, nil
	}

	if !hasRequest {
		return 0, ErrQuantityRequired
	}
	return *requested, nil
}
