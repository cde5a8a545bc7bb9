package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)
var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// MovementRepo implementación del log de movimientos sobre PostgreSQL
// (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento (append-only, sin update ni delete).
func (r *MovementRepo) Create(m *entity.Movement) error {
	query := `
		INSERT INTO movements (id, item_id, quantity, from_location_id, to_location_id, timestamp, user_id, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ItemID, m.Quantity, m.FromLocationID, m.ToLocationID, m.Timestamp, m.UserID, m.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// ListByItem lista movimientos de un producto, más recientes primero.
func (r *MovementRepo) ListByItem(itemID string, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT id, item_id, quantity, from_location_id, to_location_id, timestamp, user_id, notes
		FROM movements WHERE item_id = $1 ORDER BY timestamp DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.ItemID, &m.Quantity, &m.FromLocationID, &m.ToLocationID, &m.Timestamp, &m.UserID, &m.Notes); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// InventoryRepo implementación de la caché de cantidades sobre PostgreSQL
// (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Get obtiene la cantidad actual de un producto en una ubicación.
func (r *InventoryRepo) Get(itemID, locationID string) (*entity.Inventory, error) {
	return r.get(itemID, locationID, "")
}

// GetForUpdate obtiene la cantidad y bloquea la fila (SELECT FOR UPDATE).
// Si no hay fila devuelve una en cero: la verificación de saldo del caso de
// uso la rechazará.
func (r *InventoryRepo) GetForUpdate(itemID, locationID string) (*entity.Inventory, error) {
	return r.get(itemID, locationID, " FOR UPDATE")
}

func (r *InventoryRepo) get(itemID, locationID, suffix string) (*entity.Inventory, error) {
	query := `
		SELECT id, item_id, location_id, quantity, last_updated, updated_by
		FROM inventory WHERE item_id = $1 AND location_id = $2` + suffix
	var inv entity.Inventory
	err := r.q.QueryRow(context.Background(), query, itemID, locationID).Scan(
		&inv.ID, &inv.ItemID, &inv.LocationID, &inv.Quantity, &inv.LastUpdated, &inv.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if suffix == "" {
				return nil, nil
			}
			return &entity.Inventory{ItemID: itemID, LocationID: locationID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &inv, nil
}

// Upsert inserta o actualiza la cantidad por producto y ubicación. La clave
// natural es (item_id, location_id); el id se asigna al insertar y la fila
// existente conserva el suyo.
func (r *InventoryRepo) Upsert(inv *entity.Inventory) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory (id, item_id, location_id, quantity, last_updated, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (item_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, last_updated = EXCLUDED.last_updated, updated_by = EXCLUDED.updated_by`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.ItemID, inv.LocationID, inv.Quantity, inv.LastUpdated, inv.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("upsert inventory: %w", err)
	}
	return nil
}
