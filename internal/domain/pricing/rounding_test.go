package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/azri-hamza/rosa-sub000/internal/domain/pricing"
)

// ──────────────────────────────────────────────────────────────────────────────
// Round3 matches the precision of persisted monetary columns: half up on the
// scaled value, 3 fractional digits.
// ──────────────────────────────────────────────────────────────────────────────

func TestRound3_HalfUp(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.2344", "1.234"},
		{"1.2345", "1.235"}, // exactly half rounds up
		{"1.2346", "1.235"},
		{"0.0005", "0.001"},
		{"0.0004", "0"},
		{"10", "10"},
		{"107.0995", "107.1"},
	}
	for _, tc := range cases {
		got := pricing.Round3(decimal.RequireFromString(tc.in))
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
			"Round3(%s) = %s, want %s", tc.in, got, tc.want)
	}
}

func TestRound2_HalfUp(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"19.004", "19"},
		{"19.005", "19.01"},
		{"99.999", "100"},
		{"5", "5"},
	}
	for _, tc := range cases {
		got := pricing.Round2(decimal.RequireFromString(tc.in))
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
			"Round2(%s) = %s, want %s", tc.in, got, tc.want)
	}
}

// TestRound3_Idempotent pins that rounding an already-rounded value is a
// no-op: recomputation of derived fields must be exact.
func TestRound3_Idempotent(t *testing.T) {
	v := pricing.Round3(decimal.RequireFromString("321.2996"))
	assert.True(t, v.Equal(pricing.Round3(v)))
}
