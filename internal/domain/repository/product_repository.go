package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// ProductRepository define el puerto del catálogo mínimo de productos
// (id → descripción, solo presentación).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetByIDs resuelve descripciones en lote para listados del ledger.
	GetByIDs(ids []string) (map[string]*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
}
