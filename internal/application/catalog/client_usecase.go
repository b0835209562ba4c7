package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/azri-hamza/rosa-sub000/internal/application/dto"
	"github.com/azri-hamza/rosa-sub000/internal/domain"
	"github.com/azri-hamza/rosa-sub000/internal/domain/entity"
	"github.com/azri-hamza/rosa-sub000/internal/domain/repository"
)

// ClientUseCase client CRUD plus the referential deletion guard.
type ClientUseCase struct {
	repo     repository.ClientRepository
	txRunner GuardTxRunner
}

// NewClientUseCase builds the usecase.
func NewClientUseCase(repo repository.ClientRepository, txRunner GuardTxRunner) *ClientUseCase {
	return &ClientUseCase{repo: repo, txRunner: txRunner}
}

// Create creates a client.
func (uc *ClientUseCase) Create(in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" {
		return nil, &domain.ValidationError{Field: "name", Detail: "is required"}
	}
	country, err := normalizeCountryCode(in.CountryCode)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	client := &entity.Client{
		ID:          uuid.New().String(),
		Name:        in.Name,
		TaxID:       in.TaxID,
		Email:       in.Email,
		Phone:       in.Phone,
		Address:     in.Address,
		CountryCode: country,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(client); err != nil {
		return nil, err
	}
	return clientResponse(client), nil
}

// GetByID returns a client.
func (uc *ClientUseCase) GetByID(id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return clientResponse(client), nil
}

// List lists clients with pagination.
func (uc *ClientUseCase) List(page dto.PageRequest) ([]*dto.ClientResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, clientResponse(c))
	}
	return out, nil
}

// Update updates a client.
func (uc *ClientUseCase) Update(id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" {
		return nil, &domain.ValidationError{Field: "name", Detail: "is required"}
	}
	country, err := normalizeCountryCode(in.CountryCode)
	if err != nil {
		return nil, err
	}
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	client.Name = in.Name
	client.TaxID = in.TaxID
	client.Email = in.Email
	client.Phone = in.Phone
	client.Address = in.Address
	client.CountryCode = country
	client.UpdatedAt = time.Now()
	if err := uc.repo.Update(client); err != nil {
		return nil, err
	}
	return clientResponse(client), nil
}

// Delete removes a client unless documents still reference it. The count and
// the delete run in one transaction; a quote or delivery note referencing the
// client turns the call into a ConflictError naming the client and the count.
func (uc *ClientUseCase) Delete(ctx context.Context, id string) error {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.ErrNotFound
	}
	return uc.txRunner.RunGuard(ctx, func(
		clientRepo repository.ClientRepository,
		quoteRepo repository.QuoteRepository,
		deliveryRepo repository.DeliveryNoteRepository,
	) error {
		quotes, err := quoteRepo.CountByClient(id)
		if err != nil {
			return fmt.Errorf("count quotes for client: %w", err)
		}
		deliveries, err := deliveryRepo.CountByClient(id)
		if err != nil {
			return fmt.Errorf("count delivery notes for client: %w", err)
		}
		if total := quotes + deliveries; total > 0 {
			return &domain.ConflictError{
				Entity:     "client",
				ID:         id,
				Name:       client.Name,
				Dependents: total,
				Reason:     "documents still reference this client",
			}
		}
		return clientRepo.Delete(id)
	})
}

func clientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:          c.ID,
		Name:        c.Name,
		TaxID:       c.TaxID,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		CountryCode: c.CountryCode,
	}
}
