package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	domledger "github.com/jhoicas/almacen-api/internal/domain/ledger"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// LedgerUseCase opera el ledger append-only de unidades de inventario:
// recepción (pending), aplicación, corrección encadenada y búsqueda.
// Una corrección nunca sobreescribe historia: anula la fila vigente y crea
// una nueva encadenada, todo en una transacción.
type LedgerUseCase struct {
	unitRepo    repository.InventoryUnitRepository
	locRepo     repository.LocationRepository
	productRepo repository.ProductRepository
	txRunner    TxRunner
	log         *logger.Logger
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	unitRepo repository.InventoryUnitRepository,
	locRepo repository.LocationRepository,
	productRepo repository.ProductRepository,
	txRunner TxRunner,
	log *logger.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		unitRepo:    unitRepo,
		locRepo:     locRepo,
		productRepo: productRepo,
		txRunner:    txRunner,
		log:         log,
	}
}

// AddInput datos de una recepción física.
type AddInput struct {
	ProductID       string
	LocationID      string
	Quantity        decimal.Decimal
	HumanReadableID string
	DocumentID      string
	ERPDocumentID   string
	CreatedBy       string
	Notes           string
}

// Add registra una recepción: toma el siguiente consecutivo de recepción,
// deriva el unitCode y persiste la unidad en pending, todo en una tx.
func (uc *LedgerUseCase) Add(ctx context.Context, in AddInput) (*entity.InventoryUnit, error) {
	if in.ProductID == "" || in.LocationID == "" {
		return nil, fmt.Errorf("productId y locationId son requeridos: %w", domain.ErrValidation)
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("cantidad debe ser > 0: %w", domain.ErrValidation)
	}
	loc, err := uc.locRepo.GetByID(in.LocationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, fmt.Errorf("ubicación %s no existe: %w", in.LocationID, domain.ErrValidation)
	}

	var unit *entity.InventoryUnit
	err = uc.txRunner.RunLedger(ctx, func(
		unitRepo repository.InventoryUnitRepository,
		consRepo repository.ConsecutiveRepository,
	) error {
		n, err := consRepo.Next(domledger.SequenceReceptions)
		if err != nil {
			return err
		}
		consecutive := domledger.FormatReception(n)
		now := time.Now()
		unit = &entity.InventoryUnit{
			ID:                   uuid.New().String(),
			UnitCode:             domledger.UnitCode(consecutive),
			ReceptionConsecutive: consecutive,
			ProductID:            in.ProductID,
			HumanReadableID:      in.HumanReadableID,
			DocumentID:           in.DocumentID,
			ERPDocumentID:        in.ERPDocumentID,
			LocationID:           in.LocationID,
			Quantity:             in.Quantity,
			Notes:                in.Notes,
			Status:               entity.UnitStatusPending,
			CreatedAt:            now,
			CreatedBy:            in.CreatedBy,
		}
		return unitRepo.Create(unit)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("unit_id", unit.ID).
		Str("consecutive", unit.ReceptionConsecutive).
		Str("location_id", unit.LocationID).
		Msg("recepción registrada")
	return unit, nil
}

// ApplyInput valores finales de una unidad pending al aplicarla. Los campos
// "nuevos" permiten corregir una recepción en vuelo sin abrir cadena de
// corrección: esa solo existe para unidades ya aplicadas.
type ApplyInput struct {
	UnitID          string
	ProductID       string
	Quantity        decimal.Decimal
	HumanReadableID string
	DocumentID      string
	ERPDocumentID   string
	UpdatedBy       string
}

// Apply finaliza una unidad pending → applied. ErrInvalidState en cualquier
// otro estado.
func (uc *LedgerUseCase) Apply(ctx context.Context, in ApplyInput) (*entity.InventoryUnit, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("cantidad debe ser > 0: %w", domain.ErrValidation)
	}
	var applied entity.InventoryUnit
	err := uc.txRunner.RunLedger(ctx, func(
		unitRepo repository.InventoryUnitRepository,
		_ repository.ConsecutiveRepository,
	) error {
		unit, err := unitRepo.GetForUpdate(in.UnitID)
		if err != nil {
			return err
		}
		if unit == nil {
			return domain.ErrNotFound
		}
		if !unit.CanApply() {
			return fmt.Errorf("aplicar sobre unidad %s: %w", unit.Status, domain.ErrInvalidState)
		}
		applied = unit.Applied(in.ProductID, in.Quantity, in.HumanReadableID, in.DocumentID, in.ERPDocumentID, in.UpdatedBy, time.Now())
		return unitRepo.Update(&applied)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("unit_id", applied.ID).Msg("unidad aplicada")
	return &applied, nil
}

// CorrectInput valores corregidos para una unidad applied.
type CorrectInput struct {
	UnitID          string
	ProductID       string
	Quantity        decimal.Decimal
	HumanReadableID string
	DocumentID      string
	ERPDocumentID   string
	Actor           string
}

// Correct corrige una unidad applied. Atómicamente: (1) la fila vigente pasa
// a voided con consecutivo de corrección fresco y sellos de anulación;
// (2) nace una fila nueva applied con consecutivo de recepción propio y
// CorrectedFromUnitID apuntando a la anulada. Dos saltos auditables, ninguna
// fila sobreescrita. ErrInvalidState sobre voided (inmutable) o pending
// (esas se corrigen vía Apply).
func (uc *LedgerUseCase) Correct(ctx context.Context, in CorrectInput) (*entity.InventoryUnit, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("cantidad debe ser > 0: %w", domain.ErrValidation)
	}
	var replacement entity.InventoryUnit
	err := uc.txRunner.RunLedger(ctx, func(
		unitRepo repository.InventoryUnitRepository,
		consRepo repository.ConsecutiveRepository,
	) error {
		unit, err := unitRepo.GetForUpdate(in.UnitID)
		if err != nil {
			return err
		}
		if unit == nil {
			return domain.ErrNotFound
		}
		if !unit.CanCorrect() {
			return fmt.Errorf("corregir sobre unidad %s: %w", unit.Status, domain.ErrInvalidState)
		}

		now := time.Now()
		corrN, err := consRepo.Next(domledger.SequenceCorrections)
		if err != nil {
			return err
		}
		voided := unit.Voided(domledger.FormatCorrection(corrN), in.Actor, now)
		if err := unitRepo.Update(&voided); err != nil {
			return err
		}

		recN, err := consRepo.Next(domledger.SequenceReceptions)
		if err != nil {
			return err
		}
		consecutive := domledger.FormatReception(recN)
		replacement = unit.Correction(
			uuid.New().String(), domledger.UnitCode(consecutive), consecutive,
			in.ProductID, in.Quantity, in.HumanReadableID, in.DocumentID, in.ERPDocumentID,
			in.Actor, now,
		)
		return unitRepo.Create(&replacement)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("voided_unit_id", in.UnitID).
		Str("new_unit_id", replacement.ID).
		Str("consecutive", replacement.ReceptionConsecutive).
		Msg("unidad corregida")
	return &replacement, nil
}

// DiscardPending descarta (borra) una unidad que aún está pending. Las
// applied y voided jamás se borran.
func (uc *LedgerUseCase) DiscardPending(ctx context.Context, unitID, actor string) error {
	err := uc.txRunner.RunLedger(ctx, func(
		unitRepo repository.InventoryUnitRepository,
		_ repository.ConsecutiveRepository,
	) error {
		unit, err := unitRepo.GetForUpdate(unitID)
		if err != nil {
			return err
		}
		if unit == nil {
			return domain.ErrNotFound
		}
		if unit.Status != entity.UnitStatusPending {
			return fmt.Errorf("descartar sobre unidad %s: %w", unit.Status, domain.ErrInvalidState)
		}
		return unitRepo.Delete(unitID)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("unit_id", unitID).Str("actor", actor).Msg("unidad pending descartada")
	return nil
}

// SearchResult unidad enriquecida con la descripción del catálogo (solo
// presentación; la validez del ledger nunca depende del catálogo).
type SearchResult struct {
	Unit               *entity.InventoryUnit
	ProductDescription string
}

// Search consulta el ledger con los filtros dados, más recientes primero.
func (uc *LedgerUseCase) Search(f repository.UnitSearchFilters) ([]SearchResult, error) {
	units, err := uc.unitRepo.Search(f)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(units))
	for _, u := range units {
		ids = append(ids, u.ProductID)
	}
	products, err := uc.productRepo.GetByIDs(ids)
	if err != nil {
		// el catálogo es solo presentación: un fallo no tumba la búsqueda
		uc.log.Warn().Err(err).Msg("catálogo no disponible para enriquecer búsqueda")
		products = nil
	}
	out := make([]SearchResult, len(units))
	for i, u := range units {
		res := SearchResult{Unit: u}
		if p := products[u.ProductID]; p != nil {
			res.ProductDescription = p.Description
		}
		out[i] = res
	}
	return out, nil
}

// MigrateLegacy asigna consecutivo y estado a filas pre-ledger que carecen
// de ellos. Idempotente: solo toca filas sin consecutivo, así que re-correrla
// no renumera nada.
func (uc *LedgerUseCase) MigrateLegacy(ctx context.Context) (int, error) {
	migrated := 0
	err := uc.txRunner.RunLedger(ctx, func(
		unitRepo repository.InventoryUnitRepository,
		consRepo repository.ConsecutiveRepository,
	) error {
		legacy, err := unitRepo.ListLegacy()
		if err != nil {
			return err
		}
		for _, unit := range legacy {
			n, err := consRepo.Next(domledger.SequenceReceptions)
			if err != nil {
				return err
			}
			unit.ReceptionConsecutive = domledger.FormatReception(n)
			unit.UnitCode = domledger.UnitCode(unit.ReceptionConsecutive)
			if unit.Status == "" {
				// lo pre-ledger ya estaba recibido físicamente
				unit.Status = entity.UnitStatusApplied
			}
			if err := unitRepo.Update(unit); err != nil {
				return err
			}
			migrated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if migrated > 0 {
		uc.log.Info().Int("count", migrated).Msg("filas legacy migradas al ledger")
	}
	return migrated, nil
}
