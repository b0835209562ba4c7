package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is a priced sales document. Totals are always derivable from Items
// and the global discount; they are recomputed whenever either changes and
// never hand-edited.
type Quote struct {
	ID             string
	ReferenceID    string // external-facing UUID
	Year           int
	SequenceNumber int // unique per year
	ClientID       *string
	Items          []LineItem

	GlobalDiscountPercentage decimal.Decimal // 0..100; authoritative over the amount
	GlobalDiscountAmount     decimal.Decimal // derived

	NetTotalBeforeGlobalDiscount decimal.Decimal
	NetTotalAfterGlobalDiscount  decimal.Decimal
	VatTotal                     decimal.Decimal
	GrandTotal                   decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}
