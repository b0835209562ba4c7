package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/azri-hamza/rosa-sub000/internal/domain/entity"
	"github.com/azri-hamza/rosa-sub000/internal/domain/repository"
)

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// QuoteRepo QuoteRepository adapter. Header and line items live in quotes /
// quote_items; callers that need header+lines atomicity run through the tx
// runner.
type QuoteRepo struct {
	q Querier
}

// NewQuoteRepository builds the adapter.
func NewQuoteRepository(q Querier) *QuoteRepo {
	return &QuoteRepo{q: q}
}

const quoteColumns = `id, reference_id, year, sequence_number, client_id,
		global_discount_percentage, global_discount_amount,
		net_total_before_global_discount, net_total_after_global_discount,
		vat_total, grand_total, created_at, updated_at`

// Create inserts the header and its lines. The per-year sequence number is
// assigned inside the insert, so it stays unique under the surrounding
// transaction.
func (r *QuoteRepo) Create(quote *entity.Quote) error {
	ctx := context.Background()
	query := `
		INSERT INTO quotes (` + quoteColumns + `)
		VALUES ($1, $2, $3,
			(SELECT COALESCE(MAX(sequence_number), 0) + 1 FROM quotes WHERE year = $3),
			$4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING sequence_number`
	err := r.q.QueryRow(ctx, query,
		quote.ID, quote.ReferenceID, quote.Year, quote.ClientID,
		quote.GlobalDiscountPercentage, quote.GlobalDiscountAmount,
		quote.NetTotalBeforeGlobalDiscount, quote.NetTotalAfterGlobalDiscount,
		quote.VatTotal, quote.GrandTotal, quote.CreatedAt, quote.UpdatedAt,
	).Scan(&quote.SequenceNumber)
	if err != nil {
		return fmt.Errorf("insert quote: %w", err)
	}
	return r.insertItems(ctx, quote.ID, quote.Items)
}

// GetByID fetches a quote with its lines.
func (r *QuoteRepo) GetByID(id string) (*entity.Quote, error) {
	return r.getBy(`id = $1`, id)
}

// GetByReferenceID fetches a quote by its external-facing reference.
func (r *QuoteRepo) GetByReferenceID(referenceID string) (*entity.Quote, error) {
	return r.getBy(`reference_id = $1`, referenceID)
}

// List lists quotes (headers and lines) newest first.
func (r *QuoteRepo) List(limit, offset int) ([]*entity.Quote, error) {
	ctx := context.Background()
	query := `SELECT ` + quoteColumns + ` FROM quotes
		ORDER BY year DESC, sequence_number DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Quote
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, quote)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, quote := range list {
		items, err := r.loadItems(ctx, quote.ID)
		if err != nil {
			return nil, err
		}
		quote.Items = items
	}
	return list, nil
}

// Update rewrites the header and replaces all line items.
func (r *QuoteRepo) Update(quote *entity.Quote) error {
	ctx := context.Background()
	query := `
		UPDATE quotes
		SET client_id = $2, global_discount_percentage = $3, global_discount_amount = $4,
		    net_total_before_global_discount = $5, net_total_after_global_discount = $6,
		    vat_total = $7, grand_total = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		quote.ID, quote.ClientID, quote.GlobalDiscountPercentage, quote.GlobalDiscountAmount,
		quote.NetTotalBeforeGlobalDiscount, quote.NetTotalAfterGlobalDiscount,
		quote.VatTotal, quote.GrandTotal, quote.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quote: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM quote_items WHERE quote_id = $1`, quote.ID); err != nil {
		return fmt.Errorf("clear quote items: %w", err)
	}
	return r.insertItems(ctx, quote.ID, quote.Items)
}

// Delete removes a quote; its lines cascade.
func (r *QuoteRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	return nil
}

// CountByClient counts quotes referencing a client, for the deletion guard.
func (r *QuoteRepo) CountByClient(clientID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM quotes WHERE client_id = $1`, clientID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count quotes by client: %w", err)
	}
	return n, nil
}

const quoteItemColumns = `id, quote_id, product_id, product_name, description,
		quantity, unit_price, discount_percentage, discount_amount,
		net_unit_price, gross_unit_price, total_price, vat_rate, vat_amount, gross_total_price`

func (r *QuoteRepo) insertItems(ctx context.Context, quoteID string, items []entity.LineItem) error {
	query := `
		INSERT INTO quote_items (` + quoteItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	for i := range items {
		it := &items[i]
		it.DocumentID = quoteID
		_, err := r.q.Exec(ctx, query,
			it.ID, quoteID, it.ProductID, it.ProductName, it.Description,
			it.Quantity, it.UnitPrice, it.DiscountPercentage, it.DiscountAmount,
			it.NetUnitPrice, it.GrossUnitPrice, it.TotalPrice, it.VatRate, it.VatAmount, it.GrossTotalPrice,
		)
		if err != nil {
			return fmt.Errorf("insert quote item: %w", err)
		}
	}
	return nil
}

func (r *QuoteRepo) loadItems(ctx context.Context, quoteID string) ([]entity.LineItem, error) {
	query := `SELECT ` + quoteItemColumns + ` FROM quote_items WHERE quote_id = $1 ORDER BY product_name, id`
	rows, err := r.q.Query(ctx, query, quoteID)
	if err != nil {
		return nil, fmt.Errorf("load quote items: %w", err)
	}
	defer rows.Close()
	var items []entity.LineItem
	for rows.Next() {
		var it entity.LineItem
		if err := rows.Scan(
			&it.ID, &it.DocumentID, &it.ProductID, &it.ProductName, &it.Description,
			&it.Quantity, &it.UnitPrice, &it.DiscountPercentage, &it.DiscountAmount,
			&it.NetUnitPrice, &it.GrossUnitPrice, &it.TotalPrice, &it.VatRate, &it.VatAmount, &it.GrossTotalPrice,
		); err != nil {
			return nil, fmt.Errorf("scan quote item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *QuoteRepo) getBy(where string, arg any) (*entity.Quote, error) {
	ctx := context.Background()
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE ` + where
	row := r.q.QueryRow(ctx, query, arg)
	quote, err := scanQuote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	items, err := r.loadItems(ctx, quote.ID)
	if err != nil {
		return nil, err
	}
	quote.Items = items
	return quote, nil
}

func scanQuote(row pgx.Row) (*entity.Quote, error) {
	var q entity.Quote
	err := row.Scan(
		&q.ID, &q.ReferenceID, &q.Year, &q.SequenceNumber, &q.ClientID,
		&q.GlobalDiscountPercentage, &q.GlobalDiscountAmount,
		&q.NetTotalBeforeGlobalDiscount, &q.NetTotalAfterGlobalDiscount,
		&q.VatTotal, &q.GrandTotal, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan quote: %w", err)
	}
	return &q, nil
}
