// Package memory implementa los puertos de repositorio en memoria.
// Respaldo para pruebas de casos de uso y para el comando de demostración:
// misma semántica observable que los adaptadores PostgreSQL, sin BD.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/almacen-api/internal/application/assignment"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/locations"
	"github.com/jhoicas/almacen-api/internal/application/locks"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Verify interface compliance
var _ ledger.TxRunner = (*Store)(nil)
var _ locations.TxRunner = (*Store)(nil)
var _ locks.TxRunner = (*Store)(nil)
var _ assignment.TxRunner = (*Store)(nil)

// Store contiene todas las tablas en memoria. Los repos comparten el mismo
// estado, igual que los adaptadores de PostgreSQL comparten el pool.
type Store struct {
	mu sync.Mutex

	locations     map[string]*entity.Location
	units         map[string]*entity.InventoryUnit
	itemLocations map[string]*entity.ItemLocation
	inventory     map[string]*entity.Inventory
	movements     []*entity.Movement
	consecutives  map[string]int64
	users         map[string]*entity.User
	products      map[string]*entity.Product
	levels        []entity.LocationLevel
	flags         map[string]bool
}

// NewStore construye el almacén vacío.
func NewStore() *Store {
	return &Store{
		locations:     make(map[string]*entity.Location),
		units:         make(map[string]*entity.InventoryUnit),
		itemLocations: make(map[string]*entity.ItemLocation),
		inventory:     make(map[string]*entity.Inventory),
		consecutives:  make(map[string]int64),
		users:         make(map[string]*entity.User),
		products:      make(map[string]*entity.Product),
		flags:         make(map[string]bool),
	}
}

// Locations devuelve el repo de ubicaciones.
func (s *Store) Locations() *LocationRepository { return &LocationRepository{s: s} }

// Units devuelve el repo del ledger.
func (s *Store) Units() *InventoryUnitRepository { return &InventoryUnitRepository{s: s} }

// Locks devuelve el repo de candados.
func (s *Store) Locks() *LockRepository { return &LockRepository{s: s} }

// ItemLocations devuelve el repo de asignaciones.
func (s *Store) ItemLocations() *ItemLocationRepository { return &ItemLocationRepository{s: s} }

// Inventory devuelve el repo de la caché de cantidades.
func (s *Store) Inventory() *InventoryRepository { return &InventoryRepository{s: s} }

// Movements devuelve el repo del log de movimientos.
func (s *Store) Movements() *MovementRepository { return &MovementRepository{s: s} }

// Consecutives devuelve el emisor de consecutivos.
func (s *Store) Consecutives() *ConsecutiveRepository { return &ConsecutiveRepository{s: s} }

// Users devuelve el repo de usuarios.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Products devuelve el repo del catálogo.
func (s *Store) Products() *ProductRepository { return &ProductRepository{s: s} }

// Config devuelve el repo de configuración.
func (s *Store) Config() *WarehouseConfigRepository { return &WarehouseConfigRepository{s: s} }

// RunLedger ejecuta el callback contra el estado compartido. En memoria no
// hay rollback: los casos de uso validan antes de escribir, que es lo que
// sostiene el todo-o-nada también aquí.
func (s *Store) RunLedger(_ context.Context, fn func(
	unitRepo repository.InventoryUnitRepository,
	consRepo repository.ConsecutiveRepository,
) error) error {
	return fn(s.Units(), s.Consecutives())
}

// RunLocations ejecuta el callback contra el estado compartido.
func (s *Store) RunLocations(_ context.Context, fn func(locRepo repository.LocationRepository) error) error {
	return fn(s.Locations())
}

// RunLocks ejecuta el callback contra el estado compartido.
func (s *Store) RunLocks(_ context.Context, fn func(lockRepo repository.LockRepository) error) error {
	return fn(s.Locks())
}

// RunAssignment ejecuta el callback contra el estado compartido.
func (s *Store) RunAssignment(_ context.Context, fn func(
	itemLocRepo repository.ItemLocationRepository,
	invRepo repository.InventoryRepository,
	movRepo repository.MovementRepository,
) error) error {
	return fn(s.ItemLocations(), s.Inventory(), s.Movements())
}

func invKey(itemID, locationID string) string { return itemID + "|" + locationID }

func cloneLocation(l *entity.Location) *entity.Location {
	c := *l
	return &c
}

func cloneUnit(u *entity.InventoryUnit) *entity.InventoryUnit {
	c := *u
	return &c
}
