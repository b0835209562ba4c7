// Package tax decides which VAT rate applies to a line at a given point in
// time and country. Both operations are pure reads over rate slices: they
// never fail, absence is nil and the "no rate available" decision belongs to
// the caller.
package tax

import (
	"time"

	"github.com/azri-hamza/rosa-sub000/internal/domain/entity"
)

// ResolveEffectiveRate selects the single applicable rate:
//
//  1. only active, live rows are candidates
//  2. asOf must fall inside [effectiveFrom, effectiveTo] (nil = open end)
//  3. countryCode must match exactly; with no country given, only rates
//     without a country qualify (country rates are never a silent fallback)
//  4. latest effectiveFrom wins (nil counts as the earliest possible start);
//     ties break on later CreatedAt, then on higher ID, so resolution is
//     deterministic for identical inputs
//
// Returns nil when nothing qualifies; callers usually fall back to
// FindDefaultRate.
func ResolveEffectiveRate(rates []entity.VatRate, countryCode *string, asOf time.Time) *entity.VatRate {
	var best *entity.VatRate
	for i := range rates {
		r := &rates[i]
		if !r.IsActive || !r.Live() || !r.EffectiveAt(asOf) {
			continue
		}
		if !countryMatches(r.CountryCode, countryCode) {
			continue
		}
		if best == nil || startsAfter(r, best) {
			best = r
		}
	}
	return best
}

// FindDefaultRate returns the single active live rate flagged as default, or
// nil when none is configured. At most one such row exists by invariant.
func FindDefaultRate(rates []entity.VatRate) *entity.VatRate {
	for i := range rates {
		r := &rates[i]
		if r.IsActive && r.Live() && r.IsDefault {
			return r
		}
	}
	return nil
}

func countryMatches(rateCountry, wanted *string) bool {
	if wanted == nil {
		return rateCountry == nil
	}
	return rateCountry != nil && *rateCountry == *wanted
}

// startsAfter reports whether a should be preferred over b: later
// effectiveFrom first, then later CreatedAt, then higher ID.
func startsAfter(a, b *entity.VatRate) bool {
	af, bf := startOf(a), startOf(b)
	if !af.Equal(bf) {
		return af.After(bf)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

func startOf(r *entity.VatRate) time.Time {
	if r.EffectiveFrom == nil {
		return time.Time{} // open start sorts before any real date
	}
	return *r.EffectiveFrom
}
