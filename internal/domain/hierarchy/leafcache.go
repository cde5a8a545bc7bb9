package hierarchy

import (
	"sync"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// LeafCache memoiza el set de hojas calculado. Es un objeto explícito con
// gancho de invalidación: cada escritura estructural del árbol debe llamar
// Invalidate, nada de estado global implícito del proceso.
type LeafCache struct {
	mu     sync.Mutex
	leaves []*entity.Location
	valid  bool
}

// NewLeafCache construye la caché vacía (inválida).
func NewLeafCache() *LeafCache {
	return &LeafCache{}
}

// Get devuelve el set cacheado o lo recarga con load si está invalidado.
func (c *LeafCache) Get(load func() ([]*entity.Location, error)) ([]*entity.Location, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid {
		return c.leaves, nil
	}
	leaves, err := load()
	if err != nil {
		return nil, err
	}
	c.leaves = leaves
	c.valid = true
	return leaves, nil
}

// Invalidate descarta el set cacheado. Llamar tras toda escritura estructural.
func (c *LeafCache) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.leaves = nil
	c.mu.Unlock()
}
