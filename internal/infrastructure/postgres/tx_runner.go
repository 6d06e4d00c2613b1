package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/railparts-api/internal/application/closing"
	"github.com/tu-usuario/railparts-api/internal/application/inventory"
	"github.com/tu-usuario/railparts-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and closing.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ closing.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Los movimientos y reversos corren aquí: el FOR UPDATE del artículo serializa
// las escrituras concurrentes sobre el mismo stock.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
	auditRepo repository.AuditRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	itemRepo := NewItemRepository(tx)
	movRepo := NewMovementRepository(tx)
	auditRepo := NewAuditRepository(tx)

	if err := fn(itemRepo, movRepo, auditRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunClosing inicia una transacción con los repos del lote de cierre. El cierre
// es todo-o-nada: cualquier error de fn revierte snapshots y contadores juntos.
func (r *TxRunner) RunClosing(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	closingRepo repository.ClosingRepository,
	auditRepo repository.AuditRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	itemRepo := NewItemRepository(tx)
	closingRepo := NewClosingRepository(tx)
	auditRepo := NewAuditRepository(tx)

	if err := fn(itemRepo, closingRepo, auditRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
