package repository

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// Valores de statusFilter en búsquedas del ledger.
const (
	StatusFilterPending = "pending"
	StatusFilterAll     = "all"
)

// UnitSearchFilters filtros de búsqueda sobre el ledger. Los campos vacíos
// no filtran. ShowVoided false oculta las filas anuladas (el default).
type UnitSearchFilters struct {
	From                 *time.Time
	To                   *time.Time
	ProductID            string
	HumanReadableID      string
	UnitCode             string
	DocumentID           string
	ReceptionConsecutive string
	ShowVoided           bool
	StatusFilter         string // pending | all
	Limit                int
	Offset               int
}

// InventoryUnitRepository define el puerto del ledger append-only de
// unidades de inventario.
type InventoryUnitRepository interface {
	Create(u *entity.InventoryUnit) error
	GetByID(id string) (*entity.InventoryUnit, error)
	// GetForUpdate bloquea la fila para la transición de estado.
	GetForUpdate(id string) (*entity.InventoryUnit, error)
	Update(u *entity.InventoryUnit) error
	// Delete solo para descartar unidades pending antes de aplicarlas.
	Delete(id string) error
	// Search devuelve las unidades más recientes primero.
	Search(f UnitSearchFilters) ([]*entity.InventoryUnit, error)
	// ListLegacy devuelve filas pre-ledger sin consecutivo de recepción.
	ListLegacy() ([]*entity.InventoryUnit, error)
	CountActiveByLocation(locationID string) (int, error)
}
