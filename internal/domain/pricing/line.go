package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/azri-hamza/rosa-sub000/internal/domain"
)

// LineInput holds the four independent inputs of a line. DiscountPercentage
// is authoritative; an amount sent by a caller is only ever a request to
// back-solve the percentage once (see SolveDiscountPercentage).
type LineInput struct {
	Quantity           decimal.Decimal
	UnitPrice          decimal.Decimal // net list price
	DiscountPercentage decimal.Decimal // 0..100
	VatRatePercent     decimal.Decimal // 0..100
}

// LineResult holds the derived monetary fields of a line, all rounded to
// 3 decimals. Recomputing from the same LineInput reproduces a LineResult
// exactly.
type LineResult struct {
	DiscountAmount  decimal.Decimal
	NetUnitPrice    decimal.Decimal
	GrossUnitPrice  decimal.Decimal
	TotalPrice      decimal.Decimal // net line total
	VatAmount       decimal.Decimal
	GrossTotalPrice decimal.Decimal
}

// ComputeLine runs the discount and tax cascade in its fixed order:
//
//	discountAmount  = Round3(unitPrice * pct / 100)
//	netUnitPrice    = Round3(unitPrice - discountAmount)   (must be >= 0)
//	grossUnitPrice  = Round3(netUnitPrice * (1 + rate/100))
//	totalPrice      = Round3(netUnitPrice * quantity)
//	vatAmount       = Round3(totalPrice * rate/100)
//	grossTotalPrice = Round3(totalPrice + vatAmount)
//
// vatAmount is computed from the line total, not grossUnitPrice*quantity, so
// per-unit rounding error does not compound across quantity.
// Out-of-range inputs are rejected, never clamped. quantity = 0 yields
// all-zero derived fields without error.
func ComputeLine(in LineInput) (LineResult, error) {
	if in.Quantity.IsNegative() {
		return LineResult{}, &domain.ValidationError{Field: "quantity", Detail: "must be >= 0"}
	}
	if in.UnitPrice.IsNegative() {
		return LineResult{}, &domain.ValidationError{Field: "unit_price", Detail: "must be >= 0"}
	}
	if in.DiscountPercentage.IsNegative() || in.DiscountPercentage.GreaterThan(hundred) {
		return LineResult{}, &domain.ValidationError{Field: "discount_percentage", Detail: "must be between 0 and 100"}
	}
	if in.VatRatePercent.IsNegative() {
		return LineResult{}, &domain.ValidationError{Field: "vat_rate", Detail: "must be >= 0"}
	}

	discountAmount := Round3(in.UnitPrice.Mul(in.DiscountPercentage).Div(hundred))
	netUnitPrice := Round3(in.UnitPrice.Sub(discountAmount))
	if netUnitPrice.IsNegative() {
		return LineResult{}, &domain.ValidationError{Field: "net_unit_price", Detail: "discount exceeds unit price"}
	}
	rate := in.VatRatePercent.Div(hundred)
	grossUnitPrice := Round3(netUnitPrice.Mul(decimal.NewFromInt(1).Add(rate)))
	totalPrice := Round3(netUnitPrice.Mul(in.Quantity))
	vatAmount := Round3(totalPrice.Mul(rate))
	grossTotalPrice := Round3(totalPrice.Add(vatAmount))

	return LineResult{
		DiscountAmount:  discountAmount,
		NetUnitPrice:    netUnitPrice,
		GrossUnitPrice:  grossUnitPrice,
		TotalPrice:      totalPrice,
		VatAmount:       vatAmount,
		GrossTotalPrice: grossTotalPrice,
	}, nil
}

// SolveDiscountPercentage back-solves the percentage from an absolute
// discount amount, for callers that captured amount-only input. The result
// (2 decimals, half up) then feeds ComputeLine as the single source of truth;
// the stored amount is always re-derived from it.
func SolveDiscountPercentage(unitPrice, discountAmount decimal.Decimal) (decimal.Decimal, error) {
	if discountAmount.IsNegative() {
		return decimal.Zero, &domain.ValidationError{Field: "discount_amount", Detail: "must be >= 0"}
	}
	if discountAmount.IsZero() {
		return decimal.Zero, nil
	}
	if !unitPrice.IsPositive() {
		return decimal.Zero, &domain.ValidationError{Field: "discount_amount", Detail: "requires a positive unit price"}
	}
	pct := Round2(discountAmount.Mul(hundred).Div(unitPrice))
	if pct.GreaterThan(hundred) {
		return decimal.Zero, &domain.ValidationError{Field: "discount_amount", Detail: "exceeds unit price"}
	}
	return pct, nil
}
