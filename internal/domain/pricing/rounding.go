// Package pricing holds the pure pricing and taxation engine: fixed-point
// rounding, the per-line discount and tax cascade, and document aggregation.
// It operates on in-memory decimal values only; persistence and HTTP are
// external collaborators.
package pricing

import "github.com/shopspring/decimal"

// Round3 rounds a monetary value to 3 decimal places, half up on the scaled
// value. This is the precision of persisted monetary columns: every
// intermediate monetary value must pass through it before being stored or
// compared, so float drift beyond 3 decimals never leaks into output.
func Round3(d decimal.Decimal) decimal.Decimal {
	return d.Round(3)
}

// Round2 rounds percentage fields to 2 decimal places with the same half-up
// rule.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

var hundred = decimal.NewFromInt(100)
