package ledger

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios del ledger atados a esa tx. La asignación de consecutivos y
// la escritura de la fila que los consume viajan juntas: Commit o Rollback.
type TxRunner interface {
	RunLedger(ctx context.Context, fn func(
		unitRepo repository.InventoryUnitRepository,
		consRepo repository.ConsecutiveRepository,
	) error) error
}
