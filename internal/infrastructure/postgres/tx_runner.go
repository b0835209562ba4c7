package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/azri-hamza/rosa-sub000/internal/application/catalog"
	"github.com/azri-hamza/rosa-sub000/internal/application/sales"
	"github.com/azri-hamza/rosa-sub000/internal/domain/repository"
)

// Ensure TxRunner implements the application ports.
var _ sales.TxRunner = (*TxRunner)(nil)
var _ catalog.GuardTxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside a PostgreSQL transaction, handing the
// callback repositories bound to the tx.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner over the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunSales begins a transaction for document writes (header + lines) and
// commits or rolls back as a unit.
func (r *TxRunner) RunSales(ctx context.Context, fn func(
	quoteRepo repository.QuoteRepository,
	deliveryRepo repository.DeliveryNoteRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewQuoteRepository(tx), NewDeliveryNoteRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunGuard begins a transaction for the client deletion guard, so the
// dependency count and the delete observe the same state.
func (r *TxRunner) RunGuard(ctx context.Context, fn func(
	clientRepo repository.ClientRepository,
	quoteRepo repository.QuoteRepository,
	deliveryRepo repository.DeliveryNoteRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewClientRepository(tx), NewQuoteRepository(tx), NewDeliveryNoteRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
