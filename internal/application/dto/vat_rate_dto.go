package dto

import "github.com/shopspring/decimal"

// CreateVatRateRequest body for POST /api/vat-rates. Rate is the 0..1
// fraction; the percentage is derived, never accepted.
type CreateVatRateRequest struct {
	Name          string          `json:"name"`
	Rate          decimal.Decimal `json:"rate"`
	IsActive      *bool           `json:"is_active,omitempty"` // default true
	CountryCode   *string         `json:"country_code,omitempty"`
	EffectiveFrom *string         `json:"effective_from,omitempty"` // RFC 3339
	EffectiveTo   *string         `json:"effective_to,omitempty"`
}

// UpdateVatRateRequest body for PUT /api/vat-rates/:id.
type UpdateVatRateRequest = CreateVatRateRequest

// VatRateResponse rate in responses.
type VatRateResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Rate          decimal.Decimal `json:"rate"`
	Percentage    decimal.Decimal `json:"percentage"`
	IsActive      bool            `json:"is_active"`
	IsDefault     bool            `json:"is_default"`
	CountryCode   *string         `json:"country_code,omitempty"`
	EffectiveFrom *string         `json:"effective_from,omitempty"`
	EffectiveTo   *string         `json:"effective_to,omitempty"`
}
