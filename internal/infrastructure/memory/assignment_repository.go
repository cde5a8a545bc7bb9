package memory

import (
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Verify interface compliance
var _ repository.ItemLocationRepository = (*ItemLocationRepository)(nil)
var _ repository.InventoryRepository = (*InventoryRepository)(nil)
var _ repository.MovementRepository = (*MovementRepository)(nil)

// ItemLocationRepository almacena asignaciones en memoria.
type ItemLocationRepository struct {
	s *Store
}

// Create persiste una asignación.
func (r *ItemLocationRepository) Create(il *entity.ItemLocation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *il
	r.s.itemLocations[il.ID] = &c
	return nil
}

// ListByItem lista las ubicaciones de un producto.
func (r *ItemLocationRepository) ListByItem(itemID string) ([]*entity.ItemLocation, error) {
	return r.filter(func(il *entity.ItemLocation) bool { return il.ItemID == itemID })
}

// ListByLocation lista los productos de una ubicación.
func (r *ItemLocationRepository) ListByLocation(locationID string) ([]*entity.ItemLocation, error) {
	return r.filter(func(il *entity.ItemLocation) bool { return il.LocationID == locationID })
}

func (r *ItemLocationRepository) filter(keep func(*entity.ItemLocation) bool) ([]*entity.ItemLocation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.ItemLocation
	for _, il := range r.s.itemLocations {
		if keep(il) {
			c := *il
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// Delete elimina una asignación puntual.
func (r *ItemLocationRepository) Delete(itemID, locationID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, il := range r.s.itemLocations {
		if il.ItemID == itemID && il.LocationID == locationID {
			delete(r.s.itemLocations, id)
		}
	}
	return nil
}

// DeleteByItem elimina todas las asignaciones de un producto.
func (r *ItemLocationRepository) DeleteByItem(itemID string) (int64, error) {
	return r.deleteWhere(func(il *entity.ItemLocation) bool { return il.ItemID == itemID })
}

// DeleteByLocation elimina todas las asignaciones de una ubicación.
func (r *ItemLocationRepository) DeleteByLocation(locationID string) (int64, error) {
	return r.deleteWhere(func(il *entity.ItemLocation) bool { return il.LocationID == locationID })
}

func (r *ItemLocationRepository) deleteWhere(match func(*entity.ItemLocation) bool) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, il := range r.s.itemLocations {
		if match(il) {
			delete(r.s.itemLocations, id)
			n++
		}
	}
	return n, nil
}

// CountByLocation cuenta asignaciones de una ubicación.
func (r *ItemLocationRepository) CountByLocation(locationID string) (int, error) {
	list, err := r.ListByLocation(locationID)
	return len(list), err
}

// InventoryRepository caché de cantidades en memoria.
type InventoryRepository struct {
	s *Store
}

// Get obtiene la cantidad (nil si no hay fila).
func (r *InventoryRepository) Get(itemID, locationID string) (*entity.Inventory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.inventory[invKey(itemID, locationID)]
	if !ok {
		return nil, nil
	}
	c := *inv
	return &c, nil
}

// GetForUpdate como el adaptador PostgreSQL: sin fila devuelve cero.
func (r *InventoryRepository) GetForUpdate(itemID, locationID string) (*entity.Inventory, error) {
	inv, err := r.Get(itemID, locationID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		inv = &entity.Inventory{ItemID: itemID, LocationID: locationID}
	}
	return inv, nil
}

// Upsert inserta o actualiza la cantidad. La fila existente conserva su id;
// una fila nueva recibe uno al insertarse.
func (r *InventoryRepository) Upsert(inv *entity.Inventory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *inv
	if prev, ok := r.s.inventory[invKey(inv.ItemID, inv.LocationID)]; ok {
		c.ID = prev.ID
	} else if c.ID == "" {
		c.ID = uuid.New().String()
	}
	r.s.inventory[invKey(inv.ItemID, inv.LocationID)] = &c
	return nil
}

// MovementRepository log de movimientos en memoria.
type MovementRepository struct {
	s *Store
}

// Create agrega un movimiento al log.
func (r *MovementRepository) Create(m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *m
	r.s.movements = append(r.s.movements, &c)
	return nil
}

// ListByItem lista movimientos de un producto, más recientes primero.
func (r *MovementRepository) ListByItem(itemID string, limit, offset int) ([]*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Movement
	for _, m := range r.s.movements {
		if m.ItemID == itemID {
			c := *m
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Timestamp.After(list[j].Timestamp) })
	if offset > 0 {
		if offset >= len(list) {
			return nil, nil
		}
		list = list[offset:]
	}
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}
