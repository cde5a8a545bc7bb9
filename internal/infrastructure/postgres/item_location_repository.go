package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ItemLocationRepository = (*ItemLocationRepo)(nil)

// ItemLocationRepo implementación de asignaciones producto→ubicación sobre
// PostgreSQL (usable con pool o tx).
type ItemLocationRepo struct {
	q Querier
}

// NewItemLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemLocationRepository(q Querier) *ItemLocationRepo {
	return &ItemLocationRepo{q: q}
}

const itemLocationColumns = `id, item_id, location_id, client_id, is_exclusive, requires_certificate, updated_by, updated_at`

func scanItemLocation(row pgx.Row) (*entity.ItemLocation, error) {
	var il entity.ItemLocation
	err := row.Scan(
		&il.ID, &il.ItemID, &il.LocationID, &il.ClientID,
		&il.IsExclusive, &il.RequiresCertificate, &il.UpdatedBy, &il.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &il, nil
}

// Create persiste una asignación.
func (r *ItemLocationRepo) Create(il *entity.ItemLocation) error {
	query := `
		INSERT INTO item_locations (id, item_id, location_id, client_id, is_exclusive, requires_certificate, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		il.ID, il.ItemID, il.LocationID, il.ClientID,
		il.IsExclusive, il.RequiresCertificate, il.UpdatedBy, il.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("asignación %s→%s: %w", il.ItemID, il.LocationID, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert item location: %w", err)
	}
	return nil
}

// ListByItem lista las ubicaciones asignadas a un producto.
func (r *ItemLocationRepo) ListByItem(itemID string) ([]*entity.ItemLocation, error) {
	return r.list(`SELECT `+itemLocationColumns+` FROM item_locations WHERE item_id = $1 ORDER BY updated_at DESC`, itemID)
}

// ListByLocation lista los productos asignados a una ubicación.
func (r *ItemLocationRepo) ListByLocation(locationID string) ([]*entity.ItemLocation, error) {
	return r.list(`SELECT `+itemLocationColumns+` FROM item_locations WHERE location_id = $1 ORDER BY updated_at DESC`, locationID)
}

func (r *ItemLocationRepo) list(query string, arg any) ([]*entity.ItemLocation, error) {
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("list item locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.ItemLocation
	for rows.Next() {
		il, err := scanItemLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item location: %w", err)
		}
		list = append(list, il)
	}
	return list, rows.Err()
}

// Delete elimina una asignación puntual.
func (r *ItemLocationRepo) Delete(itemID, locationID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM item_locations WHERE item_id = $1 AND location_id = $2`, itemID, locationID)
	if err != nil {
		return fmt.Errorf("delete item location: %w", err)
	}
	return nil
}

// DeleteByItem elimina todas las asignaciones de un producto.
func (r *ItemLocationRepo) DeleteByItem(itemID string) (int64, error) {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM item_locations WHERE item_id = $1`, itemID)
	if err != nil {
		return 0, fmt.Errorf("delete item locations by item: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// DeleteByLocation elimina todas las asignaciones de una ubicación.
func (r *ItemLocationRepo) DeleteByLocation(locationID string) (int64, error) {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM item_locations WHERE location_id = $1`, locationID)
	if err != nil {
		return 0, fmt.Errorf("delete item locations by location: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// CountByLocation cuenta asignaciones de una ubicación (guardia de borrado).
func (r *ItemLocationRepo) CountByLocation(locationID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM item_locations WHERE location_id = $1`, locationID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count item locations: %w", err)
	}
	return n, nil
}
