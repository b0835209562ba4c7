package repository

import "github.com/azri-hamza/rosa-sub000/internal/domain/entity"

// ClientRepository persists clients.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	List(limit, offset int) ([]*entity.Client, error)
	Update(client *entity.Client) error
	// Delete removes the row. A foreign-key RESTRICT on documents is the
	// authoritative backstop behind the usecase-level dependency count.
	Delete(id string) error
}
