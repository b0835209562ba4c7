package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/azri-hamza/rosa-sub000/internal/domain"
	"github.com/azri-hamza/rosa-sub000/internal/domain/entity"
	"github.com/azri-hamza/rosa-sub000/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo ClientRepository adapter (usable with pool or tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository builds the adapter. Pass a pool or a tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, name, tax_id, email, phone, address, country_code, created_at, updated_at`

// Create persists a new client.
func (r *ClientRepo) Create(client *entity.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.Name, client.TaxID, client.Email, client.Phone, client.Address,
		client.CountryCode, client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID fetches a client by id.
func (r *ClientRepo) GetByID(id string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	var c entity.Client
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.TaxID, &c.Email, &c.Phone, &c.Address, &c.CountryCode, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// List lists clients with pagination, ordered by name.
func (r *ClientRepo) List(limit, offset int) ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.TaxID, &c.Email, &c.Phone, &c.Address, &c.CountryCode, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update rewrites a client's mutable fields.
func (r *ClientRepo) Update(client *entity.Client) error {
	query := `
		UPDATE clients
		SET name = $2, tax_id = $3, email = $4, phone = $5, address = $6, country_code = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.Name, client.TaxID, client.Email, client.Phone, client.Address,
		client.CountryCode, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// Delete removes a client. The RESTRICT foreign key on documents maps to a
// ConflictError, the same refusal the usecase-level count produces.
func (r *ClientRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return &domain.ConflictError{
				Entity: "client",
				ID:     id,
				Reason: "documents still reference this client",
			}
		}
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}
