package dto

import "github.com/shopspring/decimal"

// LineItemRequest one line of a document request. Exactly one of
// discount_percentage / discount_amount should be sent; when both are
// present the percentage wins (the amount exists only to assist manual
// entry). vat_rate_id is optional: without it the line's rate is resolved
// from the client country and the effective-dated rate table.
type LineItemRequest struct {
	ProductID          *string          `json:"product_id,omitempty"`
	ProductName        string           `json:"product_name"`
	Description        string           `json:"description,omitempty"`
	Quantity           decimal.Decimal  `json:"quantity"`
	UnitPrice          *decimal.Decimal `json:"unit_price,omitempty"` // defaults to the product net price
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty"`
	DiscountAmount     *decimal.Decimal `json:"discount_amount,omitempty"`
	VatRateID          *string          `json:"vat_rate_id,omitempty"`
}

// CreateQuoteRequest body for POST /api/quotes.
type CreateQuoteRequest struct {
	ClientID                 *string           `json:"client_id,omitempty"`
	Items                    []LineItemRequest `json:"items"`
	GlobalDiscountPercentage *decimal.Decimal  `json:"global_discount_percentage,omitempty"`
	GlobalDiscountAmount     *decimal.Decimal  `json:"global_discount_amount,omitempty"`
}

// UpdateQuoteRequest body for PUT /api/quotes/:id.
type UpdateQuoteRequest = CreateQuoteRequest

// CreateDeliveryNoteRequest body for POST /api/delivery-notes.
type CreateDeliveryNoteRequest struct {
	ClientID                 *string           `json:"client_id,omitempty"`
	Items                    []LineItemRequest `json:"items"`
	GlobalDiscountPercentage *decimal.Decimal  `json:"global_discount_percentage,omitempty"`
	GlobalDiscountAmount     *decimal.Decimal  `json:"global_discount_amount,omitempty"`
	DeliveryDate             *string           `json:"delivery_date,omitempty"` // RFC 3339
}

// UpdateDeliveryNoteRequest body for PUT /api/delivery-notes/:id.
type UpdateDeliveryNoteRequest = CreateDeliveryNoteRequest

// UpdateDeliveryStatusRequest body for PATCH /api/delivery-notes/:id/status.
type UpdateDeliveryStatusRequest struct {
	Status       string  `json:"status"`
	DeliveryDate *string `json:"delivery_date,omitempty"`
}

// DeliveredQuantityRequest one entry of the delivered-quantities update.
type DeliveredQuantityRequest struct {
	LineItemID        string          `json:"line_item_id"`
	DeliveredQuantity decimal.Decimal `json:"delivered_quantity"`
}

// LineItemResponse fully priced line in responses.
type LineItemResponse struct {
	ID                 string          `json:"id"`
	ProductID          *string         `json:"product_id,omitempty"`
	ProductName        string          `json:"product_name"`
	Description        string          `json:"description,omitempty"`
	Quantity           decimal.Decimal `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	NetUnitPrice       decimal.Decimal `json:"net_unit_price"`
	GrossUnitPrice     decimal.Decimal `json:"gross_unit_price"`
	TotalPrice         decimal.Decimal `json:"total_price"`
	VatRate            decimal.Decimal `json:"vat_rate"`
	VatAmount          decimal.Decimal `json:"vat_amount"`
	GrossTotalPrice    decimal.Decimal `json:"gross_total_price"`
	DeliveredQuantity  decimal.Decimal `json:"delivered_quantity,omitempty"`
}

// DocumentTotalsResponse totals block shared by quotes and delivery notes.
type DocumentTotalsResponse struct {
	NetTotalBeforeGlobalDiscount decimal.Decimal `json:"net_total_before_global_discount"`
	GlobalDiscountPercentage     decimal.Decimal `json:"global_discount_percentage"`
	GlobalDiscountAmount         decimal.Decimal `json:"global_discount_amount"`
	NetTotalAfterGlobalDiscount  decimal.Decimal `json:"net_total_after_global_discount"`
	VatTotal                     decimal.Decimal `json:"vat_total"`
	GrandTotal                   decimal.Decimal `json:"grand_total"`
}

// QuoteResponse quote with lines for GET /api/quotes/:id.
type QuoteResponse struct {
	ID             string                 `json:"id"`
	ReferenceID    string                 `json:"reference_id"`
	Year           int                    `json:"year"`
	SequenceNumber int                    `json:"sequence_number"`
	ClientID       *string                `json:"client_id,omitempty"`
	Items          []LineItemResponse     `json:"items"`
	Totals         DocumentTotalsResponse `json:"totals"`
	CreatedAt      string                 `json:"created_at"`
}

// DeliveryNoteResponse delivery note with lines and status.
type DeliveryNoteResponse struct {
	ID             string                 `json:"id"`
	ReferenceID    string                 `json:"reference_id"`
	Year           int                    `json:"year"`
	SequenceNumber int                    `json:"sequence_number"`
	ClientID       *string                `json:"client_id,omitempty"`
	Status         string                 `json:"status"`
	DeliveryDate   *string                `json:"delivery_date,omitempty"`
	Items          []LineItemResponse     `json:"items"`
	Totals         DocumentTotalsResponse `json:"totals"`
	CreatedAt      string                 `json:"created_at"`
}
