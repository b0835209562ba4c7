package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/azri-hamza/rosa-sub000/internal/domain"
)

// DocumentTotals aggregates priced lines under an optional document-level
// (global) discount.
type DocumentTotals struct {
	NetTotalBeforeGlobalDiscount decimal.Decimal
	GlobalDiscountAmount         decimal.Decimal
	NetTotalAfterGlobalDiscount  decimal.Decimal
	VatTotal                     decimal.Decimal
	GrandTotal                   decimal.Decimal
}

// ComputeDocument sums priced lines and applies the global discount:
//
//	netBefore  = Round3(sum(totalPrice))
//	discount   = Round3(netBefore * pct / 100)
//	netAfter   = Round3(netBefore - discount)   (must be >= 0)
//	vatTotal   = Round3(sum(vatAmount))
//	grandTotal = Round3(netAfter + vatTotal)
//
// The global discount reduces the net total only; per-line VAT amounts stay
// frozen and vatTotal is their plain sum. Recomputing VAT on the discounted
// net would retroactively change line semantics and break line idempotence,
// so that alternative was rejected.
func ComputeDocument(lines []LineResult, globalDiscountPercentage decimal.Decimal) (DocumentTotals, error) {
	if globalDiscountPercentage.IsNegative() || globalDiscountPercentage.GreaterThan(hundred) {
		return DocumentTotals{}, &domain.ValidationError{Field: "global_discount_percentage", Detail: "must be between 0 and 100"}
	}

	netBefore := decimal.Zero
	vatTotal := decimal.Zero
	for _, l := range lines {
		netBefore = netBefore.Add(l.TotalPrice)
		vatTotal = vatTotal.Add(l.VatAmount)
	}
	netBefore = Round3(netBefore)
	vatTotal = Round3(vatTotal)

	discount := Round3(netBefore.Mul(globalDiscountPercentage).Div(hundred))
	netAfter := Round3(netBefore.Sub(discount))
	if netAfter.IsNegative() {
		return DocumentTotals{}, &domain.ValidationError{Field: "global_discount_percentage", Detail: "discount exceeds net total"}
	}

	return DocumentTotals{
		NetTotalBeforeGlobalDiscount: netBefore,
		GlobalDiscountAmount:         discount,
		NetTotalAfterGlobalDiscount:  netAfter,
		VatTotal:                     vatTotal,
		GrandTotal:                   Round3(netAfter.Add(vatTotal)),
	}, nil
}

// SolveGlobalDiscountPercentage back-solves a document-level percentage from
// an absolute amount, same convenience rule as the line level.
func SolveGlobalDiscountPercentage(netTotal, discountAmount decimal.Decimal) (decimal.Decimal, error) {
	if discountAmount.IsNegative() {
		return decimal.Zero, &domain.ValidationError{Field: "global_discount_amount", Detail: "must be >= 0"}
	}
	if discountAmount.IsZero() {
		return decimal.Zero, nil
	}
	if !netTotal.IsPositive() {
		return decimal.Zero, &domain.ValidationError{Field: "global_discount_amount", Detail: "requires a positive net total"}
	}
	pct := Round2(discountAmount.Mul(hundred).Div(netTotal))
	if pct.GreaterThan(hundred) {
		return decimal.Zero, &domain.ValidationError{Field: "global_discount_amount", Detail: "exceeds net total"}
	}
	return pct, nil
}
