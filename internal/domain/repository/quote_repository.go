package repository

import "github.com/azri-hamza/rosa-sub000/internal/domain/entity"

// QuoteRepository persists quotes with their line items. Create assigns the
// per-year sequence number inside the insert.
type QuoteRepository interface {
	Create(quote *entity.Quote) error
	GetByID(id string) (*entity.Quote, error)
	GetByReferenceID(referenceID string) (*entity.Quote, error)
	List(limit, offset int) ([]*entity.Quote, error)
	// Update rewrites the header and replaces all line items.
	Update(quote *entity.Quote) error
	Delete(id string) error
	CountByClient(clientID string) (int, error)
}
