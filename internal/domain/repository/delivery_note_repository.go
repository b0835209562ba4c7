package repository

import "github.com/azri-hamza/rosa-sub000/internal/domain/entity"

// DeliveryNoteRepository persists delivery notes with their line items.
type DeliveryNoteRepository interface {
	Create(note *entity.DeliveryNote) error
	GetByID(id string) (*entity.DeliveryNote, error)
	GetByReferenceID(referenceID string) (*entity.DeliveryNote, error)
	List(limit, offset int) ([]*entity.DeliveryNote, error)
	Update(note *entity.DeliveryNote) error
	// UpdateStatus changes only the status and delivery date.
	UpdateStatus(note *entity.DeliveryNote) error
	// UpdateDeliveredQuantities rewrites per-line delivered quantities.
	UpdateDeliveredQuantities(note *entity.DeliveryNote) error
	Delete(id string) error
	CountByClient(clientID string) (int, error)
}
