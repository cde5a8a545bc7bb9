package locks_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/locks"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

func newFixture(t *testing.T, locationIDs ...string) (*locks.LockUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	for _, id := range locationIDs {
		require.NoError(t, store.Locations().Create(&entity.Location{
			ID:   id,
			Name: "Ubicación " + id,
			Code: "C-" + id,
			Type: "estante",
		}))
	}
	return locks.NewLockUseCase(store.Locks(), store, logger.NewNop()), store
}

func TestLock_ReclamaTodas(t *testing.T) {
	uc, store := newFixture(t, "a", "b", "c")

	locked, err := uc.Lock(context.Background(), []string{"a", "b"}, "María", "sesion-1")
	require.NoError(t, err)
	assert.True(t, locked)

	active, err := store.Locks().ListLocked()
	require.NoError(t, err)
	require.Len(t, active, 2)
	for _, loc := range active {
		assert.Equal(t, "María", loc.LockedBy)
		assert.Equal(t, "sesion-1", loc.LockedBySessionID)
	}
}

func TestLock_TodoONada(t *testing.T) {
	uc, store := newFixture(t, "a", "b", "c")
	ctx := context.Background()

	// sesión 1 toma A y B
	locked, err := uc.Lock(ctx, []string{"a", "b"}, "María", "sesion-1")
	require.NoError(t, err)
	require.True(t, locked)

	// sesión 2 pide B y C: B está tomada, así que no reclama NADA
	locked, err = uc.Lock(ctx, []string{"b", "c"}, "Pedro", "sesion-2")
	require.NoError(t, err)
	assert.False(t, locked)

	// C quedó libre: el reclamo fallido no dejó candados parciales
	active, err := store.Locks().ListLocked()
	require.NoError(t, err)
	assert.Len(t, active, 2)
	for _, loc := range active {
		assert.NotEqual(t, "c", loc.ID)
		assert.Equal(t, "sesion-1", loc.LockedBySessionID)
	}
}

func TestLock_ReentranteParaLaMismaSesion(t *testing.T) {
	uc, _ := newFixture(t, "a", "b")
	ctx := context.Background()

	locked, err := uc.Lock(ctx, []string{"a"}, "María", "sesion-1")
	require.NoError(t, err)
	require.True(t, locked)

	// la misma sesión puede ampliar su reclamo sobre lo que ya tiene
	locked, err = uc.Lock(ctx, []string{"a", "b"}, "María", "sesion-1")
	require.NoError(t, err)
	assert.True(t, locked)
}

func TestLock_UbicacionInexistente(t *testing.T) {
	uc, _ := newFixture(t, "a")

	_, err := uc.Lock(context.Background(), []string{"a", "no-existe"}, "María", "sesion-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRelease_Idempotente(t *testing.T) {
	uc, store := newFixture(t, "a", "b")
	ctx := context.Background()

	locked, err := uc.Lock(ctx, []string{"a"}, "María", "sesion-1")
	require.NoError(t, err)
	require.True(t, locked)

	// liberar lo tomado y lo no tomado en la misma llamada: sin error
	require.NoError(t, uc.Release(ctx, []string{"a", "b"}, "María"))
	active, err := store.Locks().ListLocked()
	require.NoError(t, err)
	assert.Empty(t, active)

	// liberar de nuevo tampoco falla
	require.NoError(t, uc.Release(ctx, []string{"a", "b"}, "María"))
}

func TestRelease_NoTocaCandadosAjenos(t *testing.T) {
	uc, store := newFixture(t, "a")
	ctx := context.Background()

	locked, err := uc.Lock(ctx, []string{"a"}, "María", "sesion-1")
	require.NoError(t, err)
	require.True(t, locked)

	// Pedro intenta liberar el candado de María: se ignora
	require.NoError(t, uc.Release(ctx, []string{"a"}, "Pedro"))
	active, err := store.Locks().ListLocked()
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "María", active[0].LockedBy)
}

func TestForceRelease_IgnoraDueno(t *testing.T) {
	uc, store := newFixture(t, "a")
	ctx := context.Background()

	locked, err := uc.Lock(ctx, []string{"a"}, "María", "sesion-muerta")
	require.NoError(t, err)
	require.True(t, locked)

	require.NoError(t, uc.ForceRelease(ctx, "a", "admin-1"))
	active, err := store.Locks().ListLocked()
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestActiveLocks(t *testing.T) {
	uc, _ := newFixture(t, "a", "b")
	ctx := context.Background()

	active, err := uc.ActiveLocks()
	require.NoError(t, err)
	assert.Empty(t, active)

	locked, err := uc.Lock(ctx, []string{"b"}, "María", "sesion-1")
	require.NoError(t, err)
	require.True(t, locked)

	active, err = uc.ActiveLocks()
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "b", active[0].ID)
}
