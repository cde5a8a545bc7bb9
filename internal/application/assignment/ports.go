package assignment

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de asignación/cantidades atados a esa tx.
type TxRunner interface {
	RunAssignment(ctx context.Context, fn func(
		itemLocRepo repository.ItemLocationRepository,
		invRepo repository.InventoryRepository,
		movRepo repository.MovementRepository,
	) error) error
}
