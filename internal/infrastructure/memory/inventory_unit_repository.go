package memory

import (
	"sort"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Verify interface compliance
var _ repository.InventoryUnitRepository = (*InventoryUnitRepository)(nil)

// InventoryUnitRepository almacena el ledger en memoria.
type InventoryUnitRepository struct {
	s *Store
}

// Create persiste una unidad nueva.
func (r *InventoryUnitRepository) Create(u *entity.InventoryUnit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.units[u.ID] = cloneUnit(u)
	return nil
}

// GetByID obtiene una unidad (nil si no existe).
func (r *InventoryUnitRepository) GetByID(id string) (*entity.InventoryUnit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.units[id]
	if !ok {
		return nil, nil
	}
	return cloneUnit(u), nil
}

// GetForUpdate igual que GetByID; el mutex del Store serializa.
func (r *InventoryUnitRepository) GetForUpdate(id string) (*entity.InventoryUnit, error) {
	return r.GetByID(id)
}

// Update reescribe la fila.
func (r *InventoryUnitRepository) Update(u *entity.InventoryUnit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.units[u.ID] = cloneUnit(u)
	return nil
}

// Delete borra la fila (solo pending descartadas).
func (r *InventoryUnitRepository) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.units, id)
	return nil
}

// Search aplica los mismos filtros que el adaptador PostgreSQL, más
// recientes primero.
func (r *InventoryUnitRepository) Search(f repository.UnitSearchFilters) ([]*entity.InventoryUnit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.InventoryUnit
	for _, u := range r.s.units {
		if matchesFilters(u, f) {
			list = append(list, cloneUnit(u))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	if f.Offset > 0 {
		if f.Offset >= len(list) {
			return nil, nil
		}
		list = list[f.Offset:]
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func matchesFilters(u *entity.InventoryUnit, f repository.UnitSearchFilters) bool {
	if !f.ShowVoided && u.Status == entity.UnitStatusVoided {
		return false
	}
	if f.StatusFilter == repository.StatusFilterPending && u.Status != entity.UnitStatusPending {
		return false
	}
	if f.From != nil && u.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && u.CreatedAt.After(*f.To) {
		return false
	}
	if f.ProductID != "" && u.ProductID != f.ProductID {
		return false
	}
	if f.HumanReadableID != "" && u.HumanReadableID != f.HumanReadableID {
		return false
	}
	if f.UnitCode != "" && u.UnitCode != f.UnitCode {
		return false
	}
	if f.DocumentID != "" && u.DocumentID != f.DocumentID && u.ERPDocumentID != f.DocumentID {
		return false
	}
	if f.ReceptionConsecutive != "" && u.ReceptionConsecutive != f.ReceptionConsecutive {
		return false
	}
	return true
}

// ListLegacy devuelve filas sin consecutivo de recepción, más antiguas primero.
func (r *InventoryUnitRepository) ListLegacy() ([]*entity.InventoryUnit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.InventoryUnit
	for _, u := range r.s.units {
		if u.ReceptionConsecutive == "" {
			list = append(list, cloneUnit(u))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

// CountActiveByLocation cuenta unidades no anuladas en una ubicación.
func (r *InventoryUnitRepository) CountActiveByLocation(locationID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, u := range r.s.units {
		if u.LocationID == locationID && u.Status != entity.UnitStatusVoided {
			n++
		}
	}
	return n, nil
}
