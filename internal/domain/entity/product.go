package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product supplies defaults for line entry: NetPrice (3-decimal net list
// price) and an optional linked VatRate. The engine reads products, it never
// computes them.
type Product struct {
	ID          string
	Name        string
	Description string
	NetPrice    decimal.Decimal
	VatRateID   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
