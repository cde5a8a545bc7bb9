package memory

import (
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Verify interface compliance
var _ repository.LockRepository = (*LockRepository)(nil)

// LockRepository opera el estado de candado de las ubicaciones en memoria.
type LockRepository struct {
	s *Store
}

// GetForUpdate devuelve las filas pedidas (en memoria no hay bloqueo de
// fila; el mutex del Store serializa).
func (r *LockRepository) GetForUpdate(ids []string) ([]*entity.Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Location
	for _, id := range ids {
		if loc, ok := r.s.locations[id]; ok {
			list = append(list, cloneLocation(loc))
		}
	}
	return list, nil
}

// SetLock marca las ubicaciones como tomadas.
func (r *LockRepository) SetLock(ids []string, userID, sessionID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range ids {
		if loc, ok := r.s.locations[id]; ok {
			loc.IsLocked = true
			loc.LockedBy = userID
			loc.LockedBySessionID = sessionID
		}
	}
	return nil
}

// ClearLock libera solo los candados del usuario (idempotente).
func (r *LockRepository) ClearLock(ids []string, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range ids {
		if loc, ok := r.s.locations[id]; ok && loc.LockedBy == userID {
			loc.IsLocked = false
			loc.LockedBy = ""
			loc.LockedBySessionID = ""
		}
	}
	return nil
}

// ForceClear libera ignorando dueño.
func (r *LockRepository) ForceClear(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if loc, ok := r.s.locations[id]; ok {
		loc.IsLocked = false
		loc.LockedBy = ""
		loc.LockedBySessionID = ""
	}
	return nil
}

// ListLocked devuelve las ubicaciones con candado tomado.
func (r *LockRepository) ListLocked() ([]*entity.Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Location
	for _, loc := range r.s.locations {
		if loc.IsLocked {
			list = append(list, cloneLocation(loc))
		}
	}
	return list, nil
}
