package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.LockRepository = (*LockRepo)(nil)

// LockRepo opera las columnas de candado de locations. Usable con pool o tx;
// el reclamo todo-o-nada requiere pasar la tx del TxRunner.
type LockRepo struct {
	q Querier
}

// NewLockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLockRepository(q Querier) *LockRepo {
	return &LockRepo{q: q}
}

// GetForUpdate bloquea las filas dadas (SELECT FOR UPDATE) y las devuelve.
func (r *LockRepo) GetForUpdate(ids []string) ([]*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE id = ANY($1) FOR UPDATE`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("lock locations for update: %w", err)
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

// SetLock marca las filas como tomadas por el usuario y la sesión.
func (r *LockRepo) SetLock(ids []string, userID, sessionID string) error {
	query := `
		UPDATE locations
		SET is_locked = true, locked_by = $2, locked_by_session_id = $3
		WHERE id = ANY($1)`
	_, err := r.q.Exec(context.Background(), query, ids, userID, sessionID)
	if err != nil {
		return fmt.Errorf("set lock: %w", err)
	}
	return nil
}

// ClearLock libera solo los candados del usuario dado. Las filas no tomadas
// por él no cambian (idempotente).
func (r *LockRepo) ClearLock(ids []string, userID string) error {
	query := `
		UPDATE locations
		SET is_locked = false, locked_by = NULL, locked_by_session_id = NULL
		WHERE id = ANY($1) AND locked_by = $2`
	_, err := r.q.Exec(context.Background(), query, ids, userID)
	if err != nil {
		return fmt.Errorf("clear lock: %w", err)
	}
	return nil
}

// ForceClear libera el candado ignorando dueño (override administrativo).
func (r *LockRepo) ForceClear(id string) error {
	query := `
		UPDATE locations
		SET is_locked = false, locked_by = NULL, locked_by_session_id = NULL
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("force clear lock: %w", err)
	}
	return nil
}

// ListLocked devuelve todas las ubicaciones con candado tomado.
func (r *LockRepo) ListLocked() ([]*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE is_locked ORDER BY code`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list locked locations: %w", err)
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
