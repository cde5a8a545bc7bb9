package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// Claves de warehouse_config.
const (
	ConfigKeyLocationLevels = "locationLevels"
	FlagPhysicalTracking    = "enablePhysicalInventoryTracking"
)

// WarehouseConfigRepository define el puerto de configuración clave/valor:
// taxonomía de niveles y feature flags.
type WarehouseConfigRepository interface {
	GetLevels() ([]entity.LocationLevel, error)
	SaveLevels(levels []entity.LocationLevel) error
	GetFlag(key string) (bool, error)
	SetFlag(key string, value bool) error
}
