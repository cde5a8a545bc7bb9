package assignment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// AssignmentUseCase mapea productos a ubicaciones en dos modos: simple
// (item_locations, sin cantidades) y avanzado (caché de cantidades +
// log de movimientos, con bloqueo de fila).
type AssignmentUseCase struct {
	itemLocRepo repository.ItemLocationRepository
	invRepo     repository.InventoryRepository
	movRepo     repository.MovementRepository
	locRepo     repository.LocationRepository
	configRepo  repository.WarehouseConfigRepository
	txRunner    TxRunner
	log         *logger.Logger
}

// NewAssignmentUseCase construye el caso de uso.
func NewAssignmentUseCase(
	itemLocRepo repository.ItemLocationRepository,
	invRepo repository.InventoryRepository,
	movRepo repository.MovementRepository,
	locRepo repository.LocationRepository,
	configRepo repository.WarehouseConfigRepository,
	txRunner TxRunner,
	log *logger.Logger,
) *AssignmentUseCase {
	return &AssignmentUseCase{
		itemLocRepo: itemLocRepo,
		invRepo:     invRepo,
		movRepo:     movRepo,
		locRepo:     locRepo,
		configRepo:  configRepo,
		txRunner:    txRunner,
		log:         log,
	}
}

// AssignInput datos de una asignación simple.
type AssignInput struct {
	ItemID              string
	LocationID          string
	ClientID            *string
	IsExclusive         bool
	RequiresCertificate bool
	Actor               string
	Mode                string // move | add_and_mix
}

// Assign crea el mapeo producto→ubicación. En modo move elimina primero las
// filas previas del producto en otras ubicaciones (ubicación autoritativa
// única); en add_and_mix el mapeo nuevo convive con los existentes.
func (uc *AssignmentUseCase) Assign(ctx context.Context, in AssignInput) (*entity.ItemLocation, error) {
	if in.ItemID == "" || in.LocationID == "" {
		return nil, fmt.Errorf("itemId y locationId son requeridos: %w", domain.ErrValidation)
	}
	if in.Mode != entity.AssignModeMove && in.Mode != entity.AssignModeAddAndMix {
		return nil, fmt.Errorf("modo %q no soportado: %w", in.Mode, domain.ErrValidation)
	}
	loc, err := uc.locRepo.GetByID(in.LocationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, fmt.Errorf("ubicación %s no existe: %w", in.LocationID, domain.ErrValidation)
	}

	row := &entity.ItemLocation{
		ID:                  uuid.New().String(),
		ItemID:              in.ItemID,
		LocationID:          in.LocationID,
		ClientID:            in.ClientID,
		IsExclusive:         in.IsExclusive,
		RequiresCertificate: in.RequiresCertificate,
		UpdatedBy:           in.Actor,
		UpdatedAt:           time.Now(),
	}
	err = uc.txRunner.RunAssignment(ctx, func(
		itemLocRepo repository.ItemLocationRepository,
		_ repository.InventoryRepository,
		_ repository.MovementRepository,
	) error {
		if in.Mode == entity.AssignModeMove {
			if _, err := itemLocRepo.DeleteByItem(in.ItemID); err != nil {
				return err
			}
		}
		return itemLocRepo.Create(row)
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// CheckConflict es una lectura pura previa a asignar: advierte si el
// producto ya tiene otras ubicaciones o la ubicación ya contiene otros
// productos. Nunca bloquea la escritura; decide quien llama.
func (uc *AssignmentUseCase) CheckConflict(itemID, locationID string) (*entity.AssignmentConflict, error) {
	byItem, err := uc.itemLocRepo.ListByItem(itemID)
	if err != nil {
		return nil, err
	}
	byLocation, err := uc.itemLocRepo.ListByLocation(locationID)
	if err != nil {
		return nil, err
	}
	conflict := &entity.AssignmentConflict{}
	for _, il := range byItem {
		if il.LocationID != locationID {
			conflict.ProductHasOtherLocations = true
			break
		}
	}
	for _, il := range byLocation {
		if il.ItemID != itemID {
			conflict.LocationHasOtherProducts = true
			conflict.ConflictingProduct = il.ItemID
			break
		}
	}
	return conflict, nil
}

// ListByItem lista las ubicaciones asignadas a un producto.
func (uc *AssignmentUseCase) ListByItem(itemID string) ([]*entity.ItemLocation, error) {
	return uc.itemLocRepo.ListByItem(itemID)
}

// Unassign elimina un mapeo puntual producto→ubicación.
func (uc *AssignmentUseCase) Unassign(itemID, locationID, actor string) error {
	if itemID == "" || locationID == "" {
		return fmt.Errorf("itemId y locationId son requeridos: %w", domain.ErrValidation)
	}
	return uc.itemLocRepo.Delete(itemID, locationID)
}

// UnassignAllByProduct elimina todas las ubicaciones de un producto.
// Destructivo masivo: queda en WARN.
func (uc *AssignmentUseCase) UnassignAllByProduct(itemID, actor string) (int64, error) {
	n, err := uc.itemLocRepo.DeleteByItem(itemID)
	if err != nil {
		return 0, err
	}
	uc.log.Warn().Str("item_id", itemID).Str("actor", actor).Int64("rows", n).Msg("asignaciones eliminadas por producto")
	return n, nil
}

// UnassignAllByLocation elimina todos los productos de una ubicación.
// Destructivo masivo: queda en WARN.
func (uc *AssignmentUseCase) UnassignAllByLocation(locationID, actor string) (int64, error) {
	n, err := uc.itemLocRepo.DeleteByLocation(locationID)
	if err != nil {
		return 0, err
	}
	uc.log.Warn().Str("location_id", locationID).Str("actor", actor).Int64("rows", n).Msg("asignaciones eliminadas por ubicación")
	return n, nil
}

// TransferInput movimiento de cantidad en modo avanzado. From nil = entrada
// externa al sistema; To nil = salida del sistema.
type TransferInput struct {
	ItemID         string
	Quantity       decimal.Decimal
	FromLocationID *string
	ToLocationID   *string
	UserID         string
	Notes          string
}

// Transfer mueve cantidad entre ubicaciones en una sola transacción:
// bloquea la fila de origen (SELECT FOR UPDATE), verifica saldo, actualiza
// la caché de cantidades y agrega la fila al log de movimientos. Requiere
// el flag enablePhysicalInventoryTracking.
func (uc *AssignmentUseCase) Transfer(ctx context.Context, in TransferInput) error {
	if enabled, err := uc.configRepo.GetFlag(repository.FlagPhysicalTracking); err != nil {
		return err
	} else if !enabled {
		return fmt.Errorf("seguimiento físico de inventario deshabilitado: %w", domain.ErrValidation)
	}
	if in.ItemID == "" {
		return fmt.Errorf("itemId es requerido: %w", domain.ErrValidation)
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return fmt.Errorf("cantidad debe ser > 0: %w", domain.ErrValidation)
	}
	if in.FromLocationID == nil && in.ToLocationID == nil {
		return fmt.Errorf("se requiere origen o destino: %w", domain.ErrValidation)
	}
	if in.FromLocationID != nil && in.ToLocationID != nil && *in.FromLocationID == *in.ToLocationID {
		return fmt.Errorf("origen y destino iguales: %w", domain.ErrValidation)
	}

	now := time.Now()
	return uc.txRunner.RunAssignment(ctx, func(
		_ repository.ItemLocationRepository,
		invRepo repository.InventoryRepository,
		movRepo repository.MovementRepository,
	) error {
		if in.FromLocationID != nil {
			// bloquea la fila de origen y verifica saldo
			origin, err := invRepo.GetForUpdate(in.ItemID, *in.FromLocationID)
			if err != nil {
				return err
			}
			if origin.Quantity.LessThan(in.Quantity) {
				return fmt.Errorf("saldo %s insuficiente: %w", origin.Quantity, domain.ErrConflict)
			}
			origin.Quantity = origin.Quantity.Sub(in.Quantity)
			origin.LastUpdated = now
			origin.UpdatedBy = in.UserID
			if err := invRepo.Upsert(origin); err != nil {
				return err
			}
		}
		if in.ToLocationID != nil {
			dest, err := invRepo.Get(in.ItemID, *in.ToLocationID)
			if err != nil {
				return err
			}
			if dest == nil {
				dest = &entity.Inventory{ItemID: in.ItemID, LocationID: *in.ToLocationID, Quantity: decimal.Zero}
			}
			dest.Quantity = dest.Quantity.Add(in.Quantity)
			dest.LastUpdated = now
			dest.UpdatedBy = in.UserID
			if err := invRepo.Upsert(dest); err != nil {
				return err
			}
		}
		return movRepo.Create(&entity.Movement{
			ID:             uuid.New().String(),
			ItemID:         in.ItemID,
			Quantity:       in.Quantity,
			FromLocationID: in.FromLocationID,
			ToLocationID:   in.ToLocationID,
			Timestamp:      now,
			UserID:         in.UserID,
			Notes:          in.Notes,
		})
	})
}

// MovementHistory lista los movimientos de un producto, más recientes primero.
func (uc *AssignmentUseCase) MovementHistory(itemID string, limit, offset int) ([]*entity.Movement, error) {
	return uc.movRepo.ListByItem(itemID, limit, offset)
}
