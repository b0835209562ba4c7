package catalog

import (
	"context"

	"github.com/azri-hamza/rosa-sub000/internal/domain/repository"
)

// GuardTxRunner runs the client deletion guard inside one transaction, so the
// dependency count and the delete see the same state: a dependent document
// inserted between check and delete either moves the count or hits the
// foreign-key backstop, never both silently.
type GuardTxRunner interface {
	RunGuard(ctx context.Context, fn func(
		clientRepo repository.ClientRepository,
		quoteRepo repository.QuoteRepository,
		deliveryRepo repository.DeliveryNoteRepository,
	) error) error
}
