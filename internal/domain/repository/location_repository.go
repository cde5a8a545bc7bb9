package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// LocationRepository define el puerto de persistencia del árbol de
// ubicaciones. La validación estructural (ciclos, taxonomía) vive en el
// dominio; aquí solo filas.
type LocationRepository interface {
	Create(loc *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	GetByCode(code string) (*entity.Location, error)
	Update(loc *entity.Location) error
	Delete(id string) error
	// ListAll devuelve el árbol completo; la jerarquía es pequeña y las
	// operaciones estructurales reconstruyen la adyacencia en memoria.
	ListAll() ([]*entity.Location, error)
}
