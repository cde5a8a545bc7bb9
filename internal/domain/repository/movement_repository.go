package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// MovementRepository define el puerto del log append-only de movimientos de
// cantidad (modo avanzado).
type MovementRepository interface {
	Create(m *entity.Movement) error
	ListByItem(itemID string, limit, offset int) ([]*entity.Movement, error)
}

// InventoryRepository define el puerto de la caché de cantidad por
// producto+ubicación. Usado dentro de transacciones con bloqueo de fila.
type InventoryRepository interface {
	Get(itemID, locationID string) (*entity.Inventory, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(itemID, locationID string) (*entity.Inventory, error)
	Upsert(inv *entity.Inventory) error
}
