package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/almacen-api/internal/application/assignment"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/locations"
	"github.com/jhoicas/almacen-api/internal/application/locks"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Ensure TxRunner implements every application TxRunner port.
var _ ledger.TxRunner = (*TxRunner)(nil)
var _ locations.TxRunner = (*TxRunner)(nil)
var _ locks.TxRunner = (*TxRunner)(nil)
var _ assignment.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL con
// repositorios atados a esa tx.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunLedger transacción con repos del ledger: la asignación del consecutivo
// y la fila que lo consume viajan juntas.
func (r *TxRunner) RunLedger(ctx context.Context, fn func(
	unitRepo repository.InventoryUnitRepository,
	consRepo repository.ConsecutiveRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewInventoryUnitRepository(q), NewConsecutiveRepository(q))
	})
}

// RunLocations transacción con el repo de ubicaciones (creación masiva
// todo-o-nada).
func (r *TxRunner) RunLocations(ctx context.Context, fn func(
	locRepo repository.LocationRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewLocationRepository(q))
	})
}

// RunLocks transacción con el repo de candados (reclamo todo-o-nada bajo
// SELECT FOR UPDATE).
func (r *TxRunner) RunLocks(ctx context.Context, fn func(
	lockRepo repository.LockRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewLockRepository(q))
	})
}

// RunAssignment transacción con repos de asignación y cantidades.
func (r *TxRunner) RunAssignment(ctx context.Context, fn func(
	itemLocRepo repository.ItemLocationRepository,
	invRepo repository.InventoryRepository,
	movRepo repository.MovementRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewItemLocationRepository(q), NewInventoryRepository(q), NewMovementRepository(q))
	})
}
