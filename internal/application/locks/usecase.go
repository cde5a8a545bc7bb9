package locks

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// TxRunner ejecuta una función dentro de una transacción de BD con el
// repositorio de candados atado a esa tx. El reclamo todo-o-nada depende de
// verificar y escribir bajo la misma transacción.
type TxRunner interface {
	RunLocks(ctx context.Context, fn func(lockRepo repository.LockRepository) error) error
}

// LockUseCase administra los candados consultivos por sesión sobre
// ubicaciones. Son solo para evitar colisiones de edición estructural en la
// UI: no bloquean lecturas ni escrituras del ledger, y la corrección real
// contra escritores concurrentes viene de las garantías transaccionales del
// almacenamiento, nunca del candado.
type LockUseCase struct {
	lockRepo repository.LockRepository
	txRunner TxRunner
	log      *logger.Logger
}

// NewLockUseCase construye el caso de uso.
func NewLockUseCase(lockRepo repository.LockRepository, txRunner TxRunner, log *logger.Logger) *LockUseCase {
	return &LockUseCase{lockRepo: lockRepo, txRunner: txRunner, log: log}
}

// Lock intenta reclamar todas las ubicaciones dadas para la sesión. Si
// alguna está tomada por otra sesión, la llamada completa falla sin reclamar
// nada (todo-o-nada: el asistente de población reclama el rack entero antes
// de editarlo, y un reclamo parcial lo dejaría a medias). No espera ni
// encola: éxito o fracaso inmediato.
func (uc *LockUseCase) Lock(ctx context.Context, entityIDs []string, userID, sessionID string) (bool, error) {
	if len(entityIDs) == 0 || userID == "" || sessionID == "" {
		return false, fmt.Errorf("ids, userId y sessionId son requeridos: %w", domain.ErrValidation)
	}
	locked := false
	err := uc.txRunner.RunLocks(ctx, func(lockRepo repository.LockRepository) error {
		rows, err := lockRepo.GetForUpdate(entityIDs)
		if err != nil {
			return err
		}
		if len(rows) != len(entityIDs) {
			return domain.ErrNotFound
		}
		for _, loc := range rows {
			if loc.LockedByOther(sessionID) {
				// tomada por otra sesión: no reclamar nada
				return nil
			}
		}
		if err := lockRepo.SetLock(entityIDs, userID, sessionID); err != nil {
			return err
		}
		locked = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if !locked {
		uc.log.Debug().Strs("location_ids", entityIDs).Str("session", sessionID).Msg("reclamo de candados rechazado")
	}
	return locked, nil
}

// Release libera los candados del usuario sobre las ubicaciones dadas.
// Idempotente: las no tomadas por ese usuario se ignoran en silencio.
func (uc *LockUseCase) Release(ctx context.Context, entityIDs []string, userID string) error {
	if len(entityIDs) == 0 || userID == "" {
		return fmt.Errorf("ids y userId son requeridos: %w", domain.ErrValidation)
	}
	return uc.txRunner.RunLocks(ctx, func(lockRepo repository.LockRepository) error {
		return lockRepo.ClearLock(entityIDs, userID)
	})
}

// ForceRelease libera un candado ignorando al dueño. Recuperación
// administrativa para sesiones que murieron sin liberar.
func (uc *LockUseCase) ForceRelease(ctx context.Context, locationID, adminID string) error {
	if locationID == "" {
		return fmt.Errorf("locationId es requerido: %w", domain.ErrValidation)
	}
	err := uc.txRunner.RunLocks(ctx, func(lockRepo repository.LockRepository) error {
		return lockRepo.ForceClear(locationID)
	})
	if err != nil {
		return err
	}
	uc.log.Warn().Str("location_id", locationID).Str("admin", adminID).Msg("candado liberado por la fuerza")
	return nil
}

// ActiveLocks devuelve todas las ubicaciones con candado tomado, para el
// tablero administrativo de candados atascados.
func (uc *LockUseCase) ActiveLocks() ([]*entity.Location, error) {
	return uc.lockRepo.ListLocked()
}
