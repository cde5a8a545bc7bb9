package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

func newFixture(t *testing.T) (*ledger.LedgerUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()

	// una hoja donde recibir
	require.NoError(t, store.Locations().Create(&entity.Location{
		ID:   "loc-1",
		Name: "Estante A",
		Code: "EST-A",
		Type: "estante",
	}))
	require.NoError(t, store.Products().Create(&entity.Product{
		ID:          "prod-1",
		SKU:         "SKU-001",
		Description: "Tornillo 3/4",
	}))

	uc := ledger.NewLedgerUseCase(store.Units(), store.Locations(), store.Products(), store, logger.NewNop())
	return uc, store
}

func addUnit(t *testing.T, uc *ledger.LedgerUseCase, qty int64) *entity.InventoryUnit {
	t.Helper()
	unit, err := uc.Add(context.Background(), ledger.AddInput{
		ProductID:  "prod-1",
		LocationID: "loc-1",
		Quantity:   decimal.NewFromInt(qty),
		CreatedBy:  "user-1",
	})
	require.NoError(t, err)
	return unit
}

func TestAdd_CreaPendingConConsecutivo(t *testing.T) {
	uc, _ := newFixture(t)

	unit := addUnit(t, uc, 10)

	assert.Equal(t, entity.UnitStatusPending, unit.Status)
	assert.Equal(t, "REC-00001", unit.ReceptionConsecutive)
	assert.NotEmpty(t, unit.UnitCode)
	assert.Nil(t, unit.CorrectionConsecutive)
	assert.Nil(t, unit.CorrectedFromUnitID)
	assert.Equal(t, "user-1", unit.CreatedBy)
}

func TestAdd_ConsecutivosSinHuecos(t *testing.T) {
	uc, _ := newFixture(t)

	first := addUnit(t, uc, 1)
	second := addUnit(t, uc, 2)

	assert.Equal(t, "REC-00001", first.ReceptionConsecutive)
	assert.Equal(t, "REC-00002", second.ReceptionConsecutive)
	assert.NotEqual(t, first.UnitCode, second.UnitCode)
}

func TestAdd_Validaciones(t *testing.T) {
	uc, _ := newFixture(t)
	ctx := context.Background()

	_, err := uc.Add(ctx, ledger.AddInput{LocationID: "loc-1", Quantity: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrValidation, "sin producto")

	_, err = uc.Add(ctx, ledger.AddInput{ProductID: "prod-1", LocationID: "loc-1", Quantity: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrValidation, "cantidad cero")

	_, err = uc.Add(ctx, ledger.AddInput{ProductID: "prod-1", LocationID: "no-existe", Quantity: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrValidation, "ubicación inexistente")
}

func TestApply_PendingPasaAApplied(t *testing.T) {
	uc, _ := newFixture(t)
	unit := addUnit(t, uc, 10)

	applied, err := uc.Apply(context.Background(), ledger.ApplyInput{
		UnitID:    unit.ID,
		ProductID: "prod-1",
		Quantity:  decimal.NewFromInt(12), // cantidad corregida en vuelo
		UpdatedBy: "user-2",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.UnitStatusApplied, applied.Status)
	assert.True(t, applied.Quantity.Equal(decimal.NewFromInt(12)))
	assert.Equal(t, "user-2", applied.AppliedBy)
	require.NotNil(t, applied.AppliedAt)
	// el consecutivo de recepción no cambia al aplicar
	assert.Equal(t, unit.ReceptionConsecutive, applied.ReceptionConsecutive)
	assert.Equal(t, unit.UnitCode, applied.UnitCode)
}

func TestApply_SoloSobrePending(t *testing.T) {
	uc, _ := newFixture(t)
	unit := addUnit(t, uc, 10)
	ctx := context.Background()

	_, err := uc.Apply(ctx, ledger.ApplyInput{UnitID: unit.ID, ProductID: "prod-1", Quantity: decimal.NewFromInt(10)})
	require.NoError(t, err)

	// segunda aplicación: la unidad ya está applied
	_, err = uc.Apply(ctx, ledger.ApplyInput{UnitID: unit.ID, ProductID: "prod-1", Quantity: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = uc.Apply(ctx, ledger.ApplyInput{UnitID: "no-existe", ProductID: "prod-1", Quantity: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCorrect_EncadenaSinSobreescribir(t *testing.T) {
	uc, store := newFixture(t)
	ctx := context.Background()

	unit := addUnit(t, uc, 10)
	_, err := uc.Apply(ctx, ledger.ApplyInput{UnitID: unit.ID, ProductID: "prod-1", Quantity: decimal.NewFromInt(10)})
	require.NoError(t, err)

	replacement, err := uc.Correct(ctx, ledger.CorrectInput{
		UnitID:    unit.ID,
		ProductID: "prod-1",
		Quantity:  decimal.NewFromInt(8),
		Actor:     "user-3",
	})
	require.NoError(t, err)

	// la fila nueva nace applied, con consecutivo propio y backref
	assert.Equal(t, entity.UnitStatusApplied, replacement.Status)
	assert.Equal(t, "REC-00002", replacement.ReceptionConsecutive)
	require.NotNil(t, replacement.CorrectedFromUnitID)
	assert.Equal(t, unit.ID, *replacement.CorrectedFromUnitID)
	assert.True(t, replacement.Quantity.Equal(decimal.NewFromInt(8)))
	assert.NotEqual(t, unit.UnitCode, replacement.UnitCode)

	// la fila original quedó voided con consecutivo de corrección y sellos
	voided, err := store.Units().GetByID(unit.ID)
	require.NoError(t, err)
	require.NotNil(t, voided)
	assert.Equal(t, entity.UnitStatusVoided, voided.Status)
	require.NotNil(t, voided.CorrectionConsecutive)
	assert.Equal(t, "COR-00001", *voided.CorrectionConsecutive)
	assert.Equal(t, "user-3", voided.AnnulledBy)
	require.NotNil(t, voided.AnnulledAt)
	// la cantidad original sigue intacta en la fila anulada
	assert.True(t, voided.Quantity.Equal(decimal.NewFromInt(10)))
}

func TestCorrect_CadenaDeDosCorrecciones(t *testing.T) {
	uc, _ := newFixture(t)
	ctx := context.Background()

	unit := addUnit(t, uc, 10)
	_, err := uc.Apply(ctx, ledger.ApplyInput{UnitID: unit.ID, ProductID: "prod-1", Quantity: decimal.NewFromInt(10)})
	require.NoError(t, err)

	second, err := uc.Correct(ctx, ledger.CorrectInput{UnitID: unit.ID, ProductID: "prod-1", Quantity: decimal.NewFromInt(8), Actor: "u"})
	require.NoError(t, err)
	third, err := uc.Correct(ctx, ledger.CorrectInput{UnitID: second.ID, ProductID: "prod-1", Quantity: decimal.NewFromInt(9), Actor: "u"})
	require.NoError(t, err)

	// REC-00001 → REC-00002 → REC-00003; cada salto conserva el backref
	assert.Equal(t, "REC-00003", third.ReceptionConsecutive)
	require.NotNil(t, third.CorrectedFromUnitID)
	assert.Equal(t, second.ID, *third.CorrectedFromUnitID)
}

func TestCorrect_EstadosInvalidos(t *testing.T) {
	uc, _ := newFixture(t)
	ctx := context.Background()

	pending := addUnit(t, uc, 10)
	// pending no se corrige: se aplica
	_, err := uc.Correct(ctx, ledger.CorrectInput{UnitID: pending.ID, ProductID: "prod-1", Quantity: decimal.NewFromInt(5), Actor: "u"})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = uc.Apply(ctx, ledger.ApplyInput{UnitID: pending.ID, ProductID: "prod-1", Quantity: decimal.NewFromInt(10)})
	require.NoError(t, err)
	_, err = uc.Correct(ctx, ledger.CorrectInput{UnitID: pending.ID, ProductID: "prod-1", Quantity: decimal.NewFromInt(5), Actor: "u"})
	require.NoError(t, err)

	// voided es inmutable
	_, err = uc.Correct(ctx, ledger.CorrectInput{UnitID: pending.ID, ProductID: "prod-1", Quantity: decimal.NewFromInt(5), Actor: "u"})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestDiscardPending(t *testing.T) {
	uc, store := newFixture(t)
	ctx := context.Background()

	unit := addUnit(t, uc, 10)
	require.NoError(t, uc.DiscardPending(ctx, unit.ID, "user-1"))

	gone, err := store.Units().GetByID(unit.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// una applied jamás se descarta
	applied := addUnit(t, uc, 5)
	_, err = uc.Apply(ctx, ledger.ApplyInput{UnitID: applied.ID, ProductID: "prod-1", Quantity: decimal.NewFromInt(5)})
	require.NoError(t, err)
	err = uc.DiscardPending(ctx, applied.ID, "user-1")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestSearch_OcultaAnuladasPorDefecto(t *testing.T) {
	uc, _ := newFixture(t)
	ctx := context.Background()

	unit := addUnit(t, uc, 10)
	_, err := uc.Apply(ctx, ledger.ApplyInput{UnitID: unit.ID, ProductID: "prod-1", Quantity: decimal.NewFromInt(10)})
	require.NoError(t, err)
	_, err = uc.Correct(ctx, ledger.CorrectInput{UnitID: unit.ID, ProductID: "prod-1", Quantity: decimal.NewFromInt(8), Actor: "u"})
	require.NoError(t, err)

	results, err := uc.Search(repository.UnitSearchFilters{})
	require.NoError(t, err)
	require.Len(t, results, 1, "la anulada no aparece por defecto")
	assert.Equal(t, "REC-00002", results[0].Unit.ReceptionConsecutive)
	assert.Equal(t, "Tornillo 3/4", results[0].ProductDescription)

	results, err = uc.Search(repository.UnitSearchFilters{ShowVoided: true})
	require.NoError(t, err)
	assert.Len(t, results, 2, "show_voided revela la cadena completa")
}

func TestSearch_FiltroPending(t *testing.T) {
	uc, _ := newFixture(t)
	ctx := context.Background()

	pending := addUnit(t, uc, 1)
	applied := addUnit(t, uc, 2)
	_, err := uc.Apply(ctx, ledger.ApplyInput{UnitID: applied.ID, ProductID: "prod-1", Quantity: decimal.NewFromInt(2)})
	require.NoError(t, err)

	results, err := uc.Search(repository.UnitSearchFilters{StatusFilter: repository.StatusFilterPending})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, pending.ID, results[0].Unit.ID)
}

func TestSearch_PorConsecutivoYDocumento(t *testing.T) {
	uc, _ := newFixture(t)
	ctx := context.Background()

	_, err := uc.Add(ctx, ledger.AddInput{
		ProductID:     "prod-1",
		LocationID:    "loc-1",
		Quantity:      decimal.NewFromInt(3),
		DocumentID:    "FAC-900",
		ERPDocumentID: "ERP-77",
		CreatedBy:     "u",
	})
	require.NoError(t, err)
	addUnit(t, uc, 4)

	results, err := uc.Search(repository.UnitSearchFilters{ReceptionConsecutive: "REC-00001"})
	require.NoError(t, err)
	require.Len(t, results, 1)

	// document_id matchea tanto el documento propio como el del ERP
	results, err = uc.Search(repository.UnitSearchFilters{DocumentID: "ERP-77"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "FAC-900", results[0].Unit.DocumentID)
}

func TestMigrateLegacy_Idempotente(t *testing.T) {
	uc, store := newFixture(t)
	ctx := context.Background()

	// dos filas pre-ledger: sin consecutivo, sin estado
	for _, id := range []string{"legacy-1", "legacy-2"} {
		require.NoError(t, store.Units().Create(&entity.InventoryUnit{
			ID:         id,
			ProductID:  "prod-1",
			LocationID: "loc-1",
			Quantity:   decimal.NewFromInt(1),
			CreatedAt:  time.Now().Add(-24 * time.Hour),
		}))
	}

	migrated, err := uc.MigrateLegacy(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, migrated)

	u, err := store.Units().GetByID("legacy-1")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ReceptionConsecutive)
	assert.NotEmpty(t, u.UnitCode)
	assert.Equal(t, entity.UnitStatusApplied, u.Status)

	// segunda corrida: nada que migrar, nada renumerado
	before := u.ReceptionConsecutive
	migrated, err = uc.MigrateLegacy(ctx)
	require.NoError(t, err)
	assert.Zero(t, migrated)

	u, err = store.Units().GetByID("legacy-1")
	require.NoError(t, err)
	assert.Equal(t, before, u.ReceptionConsecutive)
}
