package repository

import (
	"time"

	"github.com/azri-hamza/rosa-sub000/internal/domain/entity"
)

// VatRateRepository persists master VAT rates. Rows are soft-deleted; every
// read excludes deleted rows.
type VatRateRepository interface {
	Create(rate *entity.VatRate) error
	GetByID(id string) (*entity.VatRate, error)
	GetByName(name string) (*entity.VatRate, error)
	// ListLive returns all live rows (active and inactive) for resolution.
	ListLive() ([]entity.VatRate, error)
	Update(rate *entity.VatRate) error
	// SetDefault promotes id to default and demotes every other live active
	// row, as one atomic conditional statement: no interleaving of concurrent
	// calls can leave zero or two defaults.
	SetDefault(id string, at time.Time) error
	SoftDelete(id string, at time.Time) error
}
