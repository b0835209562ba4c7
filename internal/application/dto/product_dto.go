package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body for POST /api/products.
type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	NetPrice    decimal.Decimal `json:"net_price"`
	VatRateID   *string         `json:"vat_rate_id,omitempty"`
}

// UpdateProductRequest body for PUT /api/products/:id.
type UpdateProductRequest = CreateProductRequest

// ProductResponse product in responses.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	NetPrice    decimal.Decimal `json:"net_price"`
	VatRateID   *string         `json:"vat_rate_id,omitempty"`
}
