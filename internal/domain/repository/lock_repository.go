package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// LockRepository opera el estado de candado consultivo que vive como
// columnas de locations. Usado dentro de transacciones para el reclamo
// todo-o-nada.
type LockRepository interface {
	// GetForUpdate bloquea las filas (SELECT FOR UPDATE) y las devuelve.
	GetForUpdate(ids []string) ([]*entity.Location, error)
	SetLock(ids []string, userID, sessionID string) error
	// ClearLock libera solo los candados del usuario dado (idempotente).
	ClearLock(ids []string, userID string) error
	// ForceClear libera ignorando dueño (recuperación administrativa).
	ForceClear(id string) error
	ListLocked() ([]*entity.Location, error)
}
