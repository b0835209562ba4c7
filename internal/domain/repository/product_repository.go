package repository

import "github.com/azri-hamza/rosa-sub000/internal/domain/entity"

// ProductRepository persists products.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
}
