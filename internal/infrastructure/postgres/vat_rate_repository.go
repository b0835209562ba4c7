package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/azri-hamza/rosa-sub000/internal/domain"
	"github.com/azri-hamza/rosa-sub000/internal/domain/entity"
	"github.com/azri-hamza/rosa-sub000/internal/domain/repository"
)

var _ repository.VatRateRepository = (*VatRateRepo)(nil)

// VatRateRepo VatRateRepository adapter. Rows are soft-deleted; every read
// filters deleted_at IS NULL. Name uniqueness is a partial unique index over
// live rows.
type VatRateRepo struct {
	q Querier
}

// NewVatRateRepository builds the adapter.
func NewVatRateRepository(q Querier) *VatRateRepo {
	return &VatRateRepo{q: q}
}

const vatRateColumns = `id, name, rate, percentage, is_active, is_default, country_code,
		effective_from, effective_to, created_at, updated_at, deleted_at`

// Create persists a new rate.
func (r *VatRateRepo) Create(rate *entity.VatRate) error {
	query := `
		INSERT INTO vat_rates (` + vatRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		rate.ID, rate.Name, rate.Rate, rate.Percentage, rate.IsActive, rate.IsDefault,
		rate.CountryCode, rate.EffectiveFrom, rate.EffectiveTo, rate.CreatedAt, rate.UpdatedAt, rate.DeletedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vat rate: %w", err)
	}
	return nil
}

// GetByID fetches a live rate by id.
func (r *VatRateRepo) GetByID(id string) (*entity.VatRate, error) {
	query := `SELECT ` + vatRateColumns + ` FROM vat_rates WHERE id = $1 AND deleted_at IS NULL`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByName fetches a live rate by exact (case-sensitive) name.
func (r *VatRateRepo) GetByName(name string) (*entity.VatRate, error) {
	query := `SELECT ` + vatRateColumns + ` FROM vat_rates WHERE name = $1 AND deleted_at IS NULL`
	return r.scanOne(r.q.QueryRow(context.Background(), query, name))
}

// ListLive returns every live row, active or not, for in-memory resolution.
func (r *VatRateRepo) ListLive() ([]entity.VatRate, error) {
	query := `SELECT ` + vatRateColumns + ` FROM vat_rates WHERE deleted_at IS NULL ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list vat rates: %w", err)
	}
	defer rows.Close()
	var list []entity.VatRate
	for rows.Next() {
		var v entity.VatRate
		if err := rows.Scan(
			&v.ID, &v.Name, &v.Rate, &v.Percentage, &v.IsActive, &v.IsDefault, &v.CountryCode,
			&v.EffectiveFrom, &v.EffectiveTo, &v.CreatedAt, &v.UpdatedAt, &v.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan vat rate: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// Update rewrites a rate's mutable fields. The default flag is not touched
// here; SetDefault owns it.
func (r *VatRateRepo) Update(rate *entity.VatRate) error {
	query := `
		UPDATE vat_rates
		SET name = $2, rate = $3, percentage = $4, is_active = $5, country_code = $6,
		    effective_from = $7, effective_to = $8, updated_at = $9
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query,
		rate.ID, rate.Name, rate.Rate, rate.Percentage, rate.IsActive, rate.CountryCode,
		rate.EffectiveFrom, rate.EffectiveTo, rate.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update vat rate: %w", err)
	}
	return nil
}

// SetDefault promotes one rate and demotes every other in a single
// conditional statement. Two concurrent promotions serialize on the row
// locks and the last writer wins with exactly one default — the
// clear-then-set race of a two-statement sequence cannot happen.
func (r *VatRateRepo) SetDefault(id string, at time.Time) error {
	query := `
		UPDATE vat_rates
		SET is_default = (id = $1), updated_at = $2
		WHERE deleted_at IS NULL AND is_active AND (is_default OR id = $1)`
	tag, err := r.q.Exec(context.Background(), query, id, at)
	if err != nil {
		return fmt.Errorf("set default vat rate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete stamps deleted_at; the row is never removed.
func (r *VatRateRepo) SoftDelete(id string, at time.Time) error {
	query := `UPDATE vat_rates SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	tag, err := r.q.Exec(context.Background(), query, id, at)
	if err != nil {
		return fmt.Errorf("soft delete vat rate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *VatRateRepo) scanOne(row pgx.Row) (*entity.VatRate, error) {
	var v entity.VatRate
	err := row.Scan(
		&v.ID, &v.Name, &v.Rate, &v.Percentage, &v.IsActive, &v.IsDefault, &v.CountryCode,
		&v.EffectiveFrom, &v.EffectiveTo, &v.CreatedAt, &v.UpdatedAt, &v.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vat rate: %w", err)
	}
	return &v, nil
}
