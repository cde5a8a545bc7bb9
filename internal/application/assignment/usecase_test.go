package assignment_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/assignment"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

func newFixture(t *testing.T) (*assignment.AssignmentUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	for _, id := range []string{"loc-1", "loc-2", "loc-3"} {
		require.NoError(t, store.Locations().Create(&entity.Location{
			ID:   id,
			Name: "Ubicación " + id,
			Code: "C-" + id,
			Type: "estante",
		}))
	}
	uc := assignment.NewAssignmentUseCase(
		store.ItemLocations(), store.Inventory(), store.Movements(),
		store.Locations(), store.Config(), store, logger.NewNop(),
	)
	return uc, store
}

func assign(t *testing.T, uc *assignment.AssignmentUseCase, itemID, locationID, mode string) *entity.ItemLocation {
	t.Helper()
	row, err := uc.Assign(context.Background(), assignment.AssignInput{
		ItemID:     itemID,
		LocationID: locationID,
		Actor:      "user-1",
		Mode:       mode,
	})
	require.NoError(t, err)
	return row
}

func TestAssign_MoveReubica(t *testing.T) {
	uc, _ := newFixture(t)

	assign(t, uc, "prod-1", "loc-1", entity.AssignModeMove)
	assign(t, uc, "prod-1", "loc-2", entity.AssignModeMove)

	rows, err := uc.ListByItem("prod-1")
	require.NoError(t, err)
	require.Len(t, rows, 1, "move deja una única ubicación autoritativa")
	assert.Equal(t, "loc-2", rows[0].LocationID)
}

func TestAssign_AddAndMixConvive(t *testing.T) {
	uc, _ := newFixture(t)

	assign(t, uc, "prod-1", "loc-1", entity.AssignModeAddAndMix)
	assign(t, uc, "prod-1", "loc-2", entity.AssignModeAddAndMix)

	rows, err := uc.ListByItem("prod-1")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestAssign_Validaciones(t *testing.T) {
	uc, _ := newFixture(t)
	ctx := context.Background()

	_, err := uc.Assign(ctx, assignment.AssignInput{ItemID: "p", LocationID: "loc-1", Mode: "otra-cosa"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Assign(ctx, assignment.AssignInput{ItemID: "p", LocationID: "no-existe", Mode: entity.AssignModeMove})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCheckConflict_AdvierteSinBloquear(t *testing.T) {
	uc, _ := newFixture(t)

	assign(t, uc, "prod-1", "loc-1", entity.AssignModeAddAndMix)
	assign(t, uc, "prod-2", "loc-2", entity.AssignModeAddAndMix)

	// prod-1 ya vive en loc-1; loc-2 ya contiene prod-2
	conflict, err := uc.CheckConflict("prod-1", "loc-2")
	require.NoError(t, err)
	assert.True(t, conflict.ProductHasOtherLocations)
	assert.True(t, conflict.LocationHasOtherProducts)
	assert.Equal(t, "prod-2", conflict.ConflictingProduct)

	// sin historia: sin advertencias
	conflict, err = uc.CheckConflict("prod-9", "loc-3")
	require.NoError(t, err)
	assert.False(t, conflict.ProductHasOtherLocations)
	assert.False(t, conflict.LocationHasOtherProducts)
}

func TestUnassign_MasivosDevuelvenConteo(t *testing.T) {
	uc, _ := newFixture(t)

	assign(t, uc, "prod-1", "loc-1", entity.AssignModeAddAndMix)
	assign(t, uc, "prod-1", "loc-2", entity.AssignModeAddAndMix)
	assign(t, uc, "prod-2", "loc-1", entity.AssignModeAddAndMix)

	n, err := uc.UnassignAllByProduct("prod-1", "admin")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = uc.UnassignAllByLocation("loc-1", "admin")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n, "solo quedaba prod-2 en loc-1")
}

func enableTracking(t *testing.T, store *memory.Store) {
	t.Helper()
	require.NoError(t, store.Config().SetFlag(repository.FlagPhysicalTracking, true))
}

func TestTransfer_RequiereElFlag(t *testing.T) {
	uc, _ := newFixture(t)

	err := uc.Transfer(context.Background(), assignment.TransferInput{
		ItemID:       "prod-1",
		Quantity:     decimal.NewFromInt(5),
		ToLocationID: ptr("loc-1"),
		UserID:       "user-1",
	})
	assert.ErrorIs(t, err, domain.ErrValidation, "sin el flag el modo avanzado está apagado")
}

func TestTransfer_EntradaMovimientoYSalida(t *testing.T) {
	uc, store := newFixture(t)
	enableTracking(t, store)
	ctx := context.Background()

	// entrada externa: from nulo
	require.NoError(t, uc.Transfer(ctx, assignment.TransferInput{
		ItemID:       "prod-1",
		Quantity:     decimal.NewFromInt(10),
		ToLocationID: ptr("loc-1"),
		UserID:       "user-1",
	}))

	// traslado interno
	require.NoError(t, uc.Transfer(ctx, assignment.TransferInput{
		ItemID:         "prod-1",
		Quantity:       decimal.NewFromInt(4),
		FromLocationID: ptr("loc-1"),
		ToLocationID:   ptr("loc-2"),
		UserID:         "user-1",
	}))

	// salida del sistema: to nulo
	require.NoError(t, uc.Transfer(ctx, assignment.TransferInput{
		ItemID:         "prod-1",
		Quantity:       decimal.NewFromInt(2),
		FromLocationID: ptr("loc-2"),
		UserID:         "user-1",
	}))

	origin, err := store.Inventory().Get("prod-1", "loc-1")
	require.NoError(t, err)
	require.NotNil(t, origin)
	assert.True(t, origin.Quantity.Equal(decimal.NewFromInt(6)))

	dest, err := store.Inventory().Get("prod-1", "loc-2")
	require.NoError(t, err)
	require.NotNil(t, dest)
	assert.True(t, dest.Quantity.Equal(decimal.NewFromInt(2)))

	movements, err := uc.MovementHistory("prod-1", 10, 0)
	require.NoError(t, err)
	assert.Len(t, movements, 3, "cada traslado deja su fila en el log")
}

func TestTransfer_FilaDeInventarioConservaID(t *testing.T) {
	uc, store := newFixture(t)
	enableTracking(t, store)
	ctx := context.Background()

	require.NoError(t, uc.Transfer(ctx, assignment.TransferInput{
		ItemID:       "prod-1",
		Quantity:     decimal.NewFromInt(5),
		ToLocationID: ptr("loc-1"),
		UserID:       "user-1",
	}))
	first, err := store.Inventory().Get("prod-1", "loc-1")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.NotEmpty(t, first.ID)

	// otra entrada sobre la misma fila: actualiza cantidad, conserva el id
	require.NoError(t, uc.Transfer(ctx, assignment.TransferInput{
		ItemID:       "prod-1",
		Quantity:     decimal.NewFromInt(2),
		ToLocationID: ptr("loc-1"),
		UserID:       "user-1",
	}))
	second, err := store.Inventory().Get("prod-1", "loc-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.Quantity.Equal(decimal.NewFromInt(7)))
}

func TestTransfer_SaldoInsuficiente(t *testing.T) {
	uc, store := newFixture(t)
	enableTracking(t, store)
	ctx := context.Background()

	require.NoError(t, uc.Transfer(ctx, assignment.TransferInput{
		ItemID:       "prod-1",
		Quantity:     decimal.NewFromInt(3),
		ToLocationID: ptr("loc-1"),
		UserID:       "user-1",
	}))

	err := uc.Transfer(ctx, assignment.TransferInput{
		ItemID:         "prod-1",
		Quantity:       decimal.NewFromInt(5),
		FromLocationID: ptr("loc-1"),
		ToLocationID:   ptr("loc-2"),
		UserID:         "user-1",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// el saldo de origen no se tocó
	origin, err := store.Inventory().Get("prod-1", "loc-1")
	require.NoError(t, err)
	assert.True(t, origin.Quantity.Equal(decimal.NewFromInt(3)))
}

func TestTransfer_Validaciones(t *testing.T) {
	uc, store := newFixture(t)
	enableTracking(t, store)
	ctx := context.Background()

	err := uc.Transfer(ctx, assignment.TransferInput{ItemID: "p", Quantity: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrValidation, "sin origen ni destino")

	err = uc.Transfer(ctx, assignment.TransferInput{
		ItemID:         "p",
		Quantity:       decimal.NewFromInt(1),
		FromLocationID: ptr("loc-1"),
		ToLocationID:   ptr("loc-1"),
	})
	assert.ErrorIs(t, err, domain.ErrValidation, "origen y destino iguales")

	err = uc.Transfer(ctx, assignment.TransferInput{ItemID: "p", Quantity: decimal.Zero, ToLocationID: ptr("loc-1")})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func ptr(s string) *string { return &s }
