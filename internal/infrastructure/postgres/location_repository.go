package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación del puerto LocationRepository sobre
// PostgreSQL (usable con pool o tx).
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

const locationColumns = `id, name, code, type, parent_id, is_locked, locked_by, locked_by_session_id, created_at, updated_at`

func scanLocation(row pgx.Row) (*entity.Location, error) {
	var l entity.Location
	var lockedBy, sessionID *string
	err := row.Scan(
		&l.ID, &l.Name, &l.Code, &l.Type, &l.ParentID,
		&l.IsLocked, &lockedBy, &sessionID, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lockedBy != nil {
		l.LockedBy = *lockedBy
	}
	if sessionID != nil {
		l.LockedBySessionID = *sessionID
	}
	return &l, nil
}

// Create persiste una ubicación nueva.
func (r *LocationRepo) Create(loc *entity.Location) error {
	query := `
		INSERT INTO locations (id, name, code, type, parent_id, is_locked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, false, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		loc.ID, loc.Name, loc.Code, loc.Type, loc.ParentID, loc.CreatedAt, loc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("código %q: %w", loc.Code, domain.ErrValidation)
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID.
func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE id = $1`
	loc, err := scanLocation(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return loc, nil
}

// GetByCode obtiene una ubicación por código (único en el árbol).
func (r *LocationRepo) GetByCode(code string) (*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE code = $1`
	loc, err := scanLocation(r.q.QueryRow(context.Background(), query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location by code: %w", err)
	}
	return loc, nil
}

// Update actualiza nombre, código, tipo y padre de una ubicación.
// El estado de candado se opera aparte (LockRepository).
func (r *LocationRepo) Update(loc *entity.Location) error {
	query := `
		UPDATE locations SET name = $2, code = $3, type = $4, parent_id = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		loc.ID, loc.Name, loc.Code, loc.Type, loc.ParentID, loc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("código %q: %w", loc.Code, domain.ErrValidation)
		}
		return fmt.Errorf("update location: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una ubicación. Una violación de FK (hijos o referencias que
// el caso de uso no alcanzó a ver) sale como ErrConflict.
func (r *LocationRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("ubicación referenciada: %w", domain.ErrConflict)
		}
		return fmt.Errorf("delete location: %w", err)
	}
	return nil
}

// ListAll devuelve el árbol completo de ubicaciones.
func (r *LocationRepo) ListAll() ([]*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations ORDER BY code`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, loc)
	}
	return list, rows.Err()
}
