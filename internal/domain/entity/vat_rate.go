package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// VatRate is a master tax-rate record. Rate is the 0..1 fraction (4 decimals);
// Percentage is always Rate*100 (2 decimals) and never diverges from it.
// CountryCode nil means the rate applies when no country is given — country
// rates are never used as the no-country fallback.
// EffectiveFrom/EffectiveTo bound the validity window (nil = open end).
// Rows are soft-deleted: DeletedAt set, never removed.
type VatRate struct {
	ID            string
	Name          string // unique across live rows, case-sensitive
	Rate          decimal.Decimal
	Percentage    decimal.Decimal
	IsActive      bool
	IsDefault     bool
	CountryCode   *string
	EffectiveFrom *time.Time
	EffectiveTo   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

// Live reports whether the row has not been soft-deleted.
func (r *VatRate) Live() bool { return r.DeletedAt == nil }

// EffectiveAt reports whether asOf falls inside the validity window.
func (r *VatRate) EffectiveAt(asOf time.Time) bool {
	if r.EffectiveFrom != nil && r.EffectiveFrom.After(asOf) {
		return false
	}
	if r.EffectiveTo != nil && r.EffectiveTo.Before(asOf) {
		return false
	}
	return true
}
