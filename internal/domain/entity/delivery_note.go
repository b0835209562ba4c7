package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Delivery note statuses. Delivered and cancelled are terminal.
const (
	DeliveryStatusPending   = "pending"
	DeliveryStatusDelivered = "delivered"
	DeliveryStatusCancelled = "cancelled"
)

// DeliveryNote shares the quote's totals block and adds fulfillment state.
// Line quantities must be whole numbers; DeliveredQuantity per line tracks
// partial deliveries and never exceeds the ordered quantity.
type DeliveryNote struct {
	ID             string
	ReferenceID    string
	Year           int
	SequenceNumber int
	ClientID       *string
	Items          []LineItem
	Status         string
	DeliveryDate   *time.Time

	GlobalDiscountPercentage decimal.Decimal
	GlobalDiscountAmount     decimal.Decimal

	NetTotalBeforeGlobalDiscount decimal.Decimal
	NetTotalAfterGlobalDiscount  decimal.Decimal
	VatTotal                     decimal.Decimal
	GrandTotal                   decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanTransitionTo reports whether the status change is allowed:
// pending -> delivered|cancelled; terminal states are frozen.
func (d *DeliveryNote) CanTransitionTo(status string) bool {
	if d.Status != DeliveryStatusPending {
		return false
	}
	return status == DeliveryStatusDelivered || status == DeliveryStatusCancelled
}
