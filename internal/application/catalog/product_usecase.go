package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/azri-hamza/rosa-sub000/internal/application/dto"
	"github.com/azri-hamza/rosa-sub000/internal/domain"
	"github.com/azri-hamza/rosa-sub000/internal/domain/entity"
	"github.com/azri-hamza/rosa-sub000/internal/domain/repository"
)

// ProductUseCase product CRUD. Products feed line entry with a net price and
// an optional linked VAT rate.
type ProductUseCase struct {
	repo     repository.ProductRepository
	rateRepo repository.VatRateRepository
}

// NewProductUseCase builds the usecase.
func NewProductUseCase(repo repository.ProductRepository, rateRepo repository.VatRateRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, rateRepo: rateRepo}
}

// Create creates a product.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := uc.validate(in); err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		NetPrice:    in.NetPrice.Round(3),
		VatRateID:   in.VatRateID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return productResponse(product), nil
}

// GetByID returns a product.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return productResponse(product), nil
}

// List lists products with pagination.
func (uc *ProductUseCase) List(page dto.PageRequest) ([]*dto.ProductResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, productResponse(p))
	}
	return out, nil
}

// Update updates a product.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := uc.validate(in); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	product.Name = in.Name
	product.Description = in.Description
	product.NetPrice = in.NetPrice.Round(3)
	product.VatRateID = in.VatRateID
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return productResponse(product), nil
}

// Delete removes a product. Issued documents keep their frozen line values,
// so product deletion never corrupts history.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func (uc *ProductUseCase) validate(in dto.CreateProductRequest) error {
	if in.Name == "" {
		return &domain.ValidationError{Field: "name", Detail: "is required"}
	}
	if in.NetPrice.IsNegative() {
		return &domain.ValidationError{Field: "net_price", Detail: "must be >= 0"}
	}
	if in.VatRateID != nil {
		rate, err := uc.rateRepo.GetByID(*in.VatRateID)
		if err != nil {
			return err
		}
		if rate == nil || !rate.Live() {
			return domain.ErrNotFound
		}
	}
	return nil
}

func productResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		NetPrice:    p.NetPrice,
		VatRateID:   p.VatRateID,
	}
}
