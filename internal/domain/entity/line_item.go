package entity

import "github.com/shopspring/decimal"

// LineItem is one row of a sales document, shared by quotes and delivery
// notes. Quantity, UnitPrice, DiscountPercentage and VatRate are the four
// independent inputs; every other monetary field is derived from them and
// recomputation is idempotent at 3 decimals.
//
// VatRate is the 0..1 fraction frozen onto the line at creation time: later
// changes to the master VatRate record must not retroactively alter issued
// documents, so the line keeps its own copy instead of a live join.
type LineItem struct {
	ID          string
	DocumentID  string
	ProductID   *string
	ProductName string
	Description string

	Quantity           decimal.Decimal
	UnitPrice          decimal.Decimal // net list price, 3 decimals
	DiscountPercentage decimal.Decimal // 0..100, 2 decimals; authoritative over DiscountAmount
	VatRate            decimal.Decimal // frozen fraction, 4 decimals

	DiscountAmount  decimal.Decimal // derived: Round3(UnitPrice * DiscountPercentage / 100)
	NetUnitPrice    decimal.Decimal
	GrossUnitPrice  decimal.Decimal
	TotalPrice      decimal.Decimal // net line total
	VatAmount       decimal.Decimal
	GrossTotalPrice decimal.Decimal

	// Delivery notes only: partial fulfillment tracking.
	DeliveredQuantity decimal.Decimal
}
