package entity

import "time"

// Client is a referential entity consumed by the pricing engine. CountryCode
// feeds VAT resolution when a quote line carries no explicit rate.
type Client struct {
	ID          string
	Name        string
	TaxID       string
	Email       string
	Phone       string
	Address     string
	CountryCode *string // ISO-style uppercase code, optional
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
