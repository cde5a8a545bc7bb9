package locations

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con un
// repositorio de ubicaciones atado a esa tx. Garantiza que la creación
// masiva sea todo-o-nada: una grilla parcial deja una jerarquía inservible.
type TxRunner interface {
	RunLocations(ctx context.Context, fn func(locRepo repository.LocationRepository) error) error
}
