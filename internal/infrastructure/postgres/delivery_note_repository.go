package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/azri-hamza/rosa-sub000/internal/domain/entity"
	"github.com/azri-hamza/rosa-sub000/internal/domain/repository"
)

var _ repository.DeliveryNoteRepository = (*DeliveryNoteRepo)(nil)

// DeliveryNoteRepo DeliveryNoteRepository adapter over delivery_notes /
// delivery_note_items.
type DeliveryNoteRepo struct {
	q Querier
}

// NewDeliveryNoteRepository builds the adapter.
func NewDeliveryNoteRepository(q Querier) *DeliveryNoteRepo {
	return &DeliveryNoteRepo{q: q}
}

const deliveryColumns = `id, reference_id, year, sequence_number, client_id, status, delivery_date,
		global_discount_percentage, global_discount_amount,
		net_total_before_global_discount, net_total_after_global_discount,
		vat_total, grand_total, created_at, updated_at`

// Create inserts the header and its lines, assigning the per-year sequence
// inside the insert.
func (r *DeliveryNoteRepo) Create(note *entity.DeliveryNote) error {
	ctx := context.Background()
	query := `
		INSERT INTO delivery_notes (` + deliveryColumns + `)
		VALUES ($1, $2, $3,
			(SELECT COALESCE(MAX(sequence_number), 0) + 1 FROM delivery_notes WHERE year = $3),
			$4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING sequence_number`
	err := r.q.QueryRow(ctx, query,
		note.ID, note.ReferenceID, note.Year, note.ClientID, note.Status, note.DeliveryDate,
		note.GlobalDiscountPercentage, note.GlobalDiscountAmount,
		note.NetTotalBeforeGlobalDiscount, note.NetTotalAfterGlobalDiscount,
		note.VatTotal, note.GrandTotal, note.CreatedAt, note.UpdatedAt,
	).Scan(&note.SequenceNumber)
	if err != nil {
		return fmt.Errorf("insert delivery note: %w", err)
	}
	return r.insertItems(ctx, note.ID, note.Items)
}

// GetByID fetches a note with its lines.
func (r *DeliveryNoteRepo) GetByID(id string) (*entity.DeliveryNote, error) {
	return r.getBy(`id = $1`, id)
}

// GetByReferenceID fetches a note by its external-facing reference.
func (r *DeliveryNoteRepo) GetByReferenceID(referenceID string) (*entity.DeliveryNote, error) {
	return r.getBy(`reference_id = $1`, referenceID)
}

// List lists notes (headers and lines) newest first.
func (r *DeliveryNoteRepo) List(limit, offset int) ([]*entity.DeliveryNote, error) {
	ctx := context.Background()
	query := `SELECT ` + deliveryColumns + ` FROM delivery_notes
		ORDER BY year DESC, sequence_number DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list delivery notes: %w", err)
	}
	defer rows.Close()
	var list []*entity.DeliveryNote
	for rows.Next() {
		note, err := scanDeliveryNote(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, note)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, note := range list {
		items, err := r.loadItems(ctx, note.ID)
		if err != nil {
			return nil, err
		}
		note.Items = items
	}
	return list, nil
}

// Update rewrites the header and replaces all line items.
func (r *DeliveryNoteRepo) Update(note *entity.DeliveryNote) error {
	ctx := context.Background()
	query := `
		UPDATE delivery_notes
		SET client_id = $2, delivery_date = $3,
		    global_discount_percentage = $4, global_discount_amount = $5,
		    net_total_before_global_discount = $6, net_total_after_global_discount = $7,
		    vat_total = $8, grand_total = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		note.ID, note.ClientID, note.DeliveryDate,
		note.GlobalDiscountPercentage, note.GlobalDiscountAmount,
		note.NetTotalBeforeGlobalDiscount, note.NetTotalAfterGlobalDiscount,
		note.VatTotal, note.GrandTotal, note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update delivery note: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM delivery_note_items WHERE delivery_note_id = $1`, note.ID); err != nil {
		return fmt.Errorf("clear delivery note items: %w", err)
	}
	return r.insertItems(ctx, note.ID, note.Items)
}

// UpdateStatus changes only status and delivery date.
func (r *DeliveryNoteRepo) UpdateStatus(note *entity.DeliveryNote) error {
	query := `UPDATE delivery_notes SET status = $2, delivery_date = $3, updated_at = $4 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, note.ID, note.Status, note.DeliveryDate, note.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update delivery note status: %w", err)
	}
	return nil
}

// UpdateDeliveredQuantities rewrites per-line delivered quantities only; the
// priced fields stay untouched.
func (r *DeliveryNoteRepo) UpdateDeliveredQuantities(note *entity.DeliveryNote) error {
	ctx := context.Background()
	for i := range note.Items {
		it := &note.Items[i]
		_, err := r.q.Exec(ctx,
			`UPDATE delivery_note_items SET delivered_quantity = $2 WHERE id = $1`,
			it.ID, it.DeliveredQuantity,
		)
		if err != nil {
			return fmt.Errorf("update delivered quantity: %w", err)
		}
	}
	query := `UPDATE delivery_notes SET updated_at = $2 WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, note.ID, note.UpdatedAt); err != nil {
		return fmt.Errorf("touch delivery note: %w", err)
	}
	return nil
}

// Delete removes a note; its lines cascade.
func (r *DeliveryNoteRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM delivery_notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete delivery note: %w", err)
	}
	return nil
}

// CountByClient counts notes referencing a client, for the deletion guard.
func (r *DeliveryNoteRepo) CountByClient(clientID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM delivery_notes WHERE client_id = $1`, clientID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count delivery notes by client: %w", err)
	}
	return n, nil
}

const deliveryItemColumns = `id, delivery_note_id, product_id, product_name, description,
		quantity, unit_price, discount_percentage, discount_amount,
		net_unit_price, gross_unit_price, total_price, vat_rate, vat_amount, gross_total_price,
		delivered_quantity`

func (r *DeliveryNoteRepo) insertItems(ctx context.Context, noteID string, items []entity.LineItem) error {
	query := `
		INSERT INTO delivery_note_items (` + deliveryItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	for i := range items {
		it := &items[i]
		it.DocumentID = noteID
		_, err := r.q.Exec(ctx, query,
			it.ID, noteID, it.ProductID, it.ProductName, it.Description,
			it.Quantity, it.UnitPrice, it.DiscountPercentage, it.DiscountAmount,
			it.NetUnitPrice, it.GrossUnitPrice, it.TotalPrice, it.VatRate, it.VatAmount, it.GrossTotalPrice,
			it.DeliveredQuantity,
		)
		if err != nil {
			return fmt.Errorf("insert delivery note item: %w", err)
		}
	}
	return nil
}

func (r *DeliveryNoteRepo) loadItems(ctx context.Context, noteID string) ([]entity.LineItem, error) {
	query := `SELECT ` + deliveryItemColumns + ` FROM delivery_note_items WHERE delivery_note_id = $1 ORDER BY product_name, id`
	rows, err := r.q.Query(ctx, query, noteID)
	if err != nil {
		return nil, fmt.Errorf("load delivery note items: %w", err)
	}
	defer rows.Close()
	var items []entity.LineItem
	for rows.Next() {
		var it entity.LineItem
		if err := rows.Scan(
			&it.ID, &it.DocumentID, &it.ProductID, &it.ProductName, &it.Description,
			&it.Quantity, &it.UnitPrice, &it.DiscountPercentage, &it.DiscountAmount,
			&it.NetUnitPrice, &it.GrossUnitPrice, &it.TotalPrice, &it.VatRate, &it.VatAmount, &it.GrossTotalPrice,
			&it.DeliveredQuantity,
		); err != nil {
			return nil, fmt.Errorf("scan delivery note item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *DeliveryNoteRepo) getBy(where string, arg any) (*entity.DeliveryNote, error) {
	ctx := context.Background()
	query := `SELECT ` + deliveryColumns + ` FROM delivery_notes WHERE ` + where
	note, err := scanDeliveryNote(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	items, err := r.loadItems(ctx, note.ID)
	if err != nil {
		return nil, err
	}
	note.Items = items
	return note, nil
}

func scanDeliveryNote(row pgx.Row) (*entity.DeliveryNote, error) {
	var n entity.DeliveryNote
	err := row.Scan(
		&n.ID, &n.ReferenceID, &n.Year, &n.SequenceNumber, &n.ClientID, &n.Status, &n.DeliveryDate,
		&n.GlobalDiscountPercentage, &n.GlobalDiscountAmount,
		&n.NetTotalBeforeGlobalDiscount, &n.NetTotalAfterGlobalDiscount,
		&n.VatTotal, &n.GrandTotal, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan delivery note: %w", err)
	}
	return &n, nil
}
