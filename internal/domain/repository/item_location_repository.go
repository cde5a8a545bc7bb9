package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// ItemLocationRepository define el puerto de asignaciones producto→ubicación
// en modo simple (sin cantidades).
type ItemLocationRepository interface {
	Create(il *entity.ItemLocation) error
	ListByItem(itemID string) ([]*entity.ItemLocation, error)
	ListByLocation(locationID string) ([]*entity.ItemLocation, error)
	Delete(itemID, locationID string) error
	// DeleteByItem y DeleteByLocation son destructivos masivos; el caso de
	// uso los loguea en WARN. Devuelven cuántas filas cayeron.
	DeleteByItem(itemID string) (int64, error)
	DeleteByLocation(locationID string) (int64, error)
	CountByLocation(locationID string) (int, error)
}
