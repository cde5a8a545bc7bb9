package memory

import (
	"fmt"
	"sort"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Verify interface compliance
var _ repository.LocationRepository = (*LocationRepository)(nil)

// LocationRepository almacena ubicaciones en memoria.
type LocationRepository struct {
	s *Store
}

// Create persiste una ubicación; rechaza códigos duplicados como lo haría
// el constraint único.
func (r *LocationRepository) Create(loc *entity.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.locations {
		if existing.Code == loc.Code {
			return fmt.Errorf("código %q: %w", loc.Code, domain.ErrValidation)
		}
	}
	r.s.locations[loc.ID] = cloneLocation(loc)
	return nil
}

// GetByID obtiene una ubicación por ID (nil si no existe).
func (r *LocationRepository) GetByID(id string) (*entity.Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	loc, ok := r.s.locations[id]
	if !ok {
		return nil, nil
	}
	return cloneLocation(loc), nil
}

// GetByCode obtiene una ubicación por código (nil si no existe).
func (r *LocationRepository) GetByCode(code string) (*entity.Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, loc := range r.s.locations {
		if loc.Code == code {
			return cloneLocation(loc), nil
		}
	}
	return nil, nil
}

// Update reescribe la ubicación.
func (r *LocationRepository) Update(loc *entity.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.locations[loc.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, existing := range r.s.locations {
		if existing.Code == loc.Code && existing.ID != loc.ID {
			return fmt.Errorf("código %q: %w", loc.Code, domain.ErrValidation)
		}
	}
	// conservar estado de candado: Update estructural no lo toca
	prev := r.s.locations[loc.ID]
	next := cloneLocation(loc)
	next.IsLocked = prev.IsLocked
	next.LockedBy = prev.LockedBy
	next.LockedBySessionID = prev.LockedBySessionID
	r.s.locations[loc.ID] = next
	return nil
}

// Delete elimina la ubicación.
func (r *LocationRepository) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.locations, id)
	return nil
}

// ListAll devuelve el árbol completo ordenado por código.
func (r *LocationRepository) ListAll() ([]*entity.Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := make([]*entity.Location, 0, len(r.s.locations))
	for _, loc := range r.s.locations {
		list = append(list, cloneLocation(loc))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return list, nil
}
