package sales

import (
	"context"

	"github.com/azri-hamza/rosa-sub000/internal/domain/repository"
)

// TxRunner runs document writes (header plus line items) inside one
// transaction: either a document's totals are fully, consistently persisted,
// or the whole operation fails.
type TxRunner interface {
	RunSales(ctx context.Context, fn func(
		quoteRepo repository.QuoteRepository,
		deliveryRepo repository.DeliveryNoteRepository,
	) error) error
}
