package locations_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/locations"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/hierarchy"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

func newFixture(t *testing.T) (*locations.LocationUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.Config().SaveLevels([]entity.LocationLevel{
		{Type: "bodega", Name: "Bodega"},
		{Type: "pasillo", Name: "Pasillo"},
		{Type: "estante", Name: "Estante"},
		{Type: "posicion", Name: "Posición"},
	}))
	uc := locations.NewLocationUseCase(
		store.Locations(), store.Config(), store.Units(), store.ItemLocations(), store, logger.NewNop(),
	)
	return uc, store
}

func mustAdd(t *testing.T, uc *locations.LocationUseCase, name, code, locType string, parentID *string) *entity.Location {
	t.Helper()
	loc, err := uc.Add(locations.AddInput{Name: name, Code: code, Type: locType, ParentID: parentID})
	require.NoError(t, err)
	return loc
}

func TestAdd_ValidaTaxonomia(t *testing.T) {
	uc, _ := newFixture(t)

	bodega := mustAdd(t, uc, "Bodega 04", "BOD-04", "bodega", nil)
	mustAdd(t, uc, "Pasillo 01", "PAS-01", "pasillo", &bodega.ID)

	// un tipo fuera de la taxonomía se rechaza
	_, err := uc.Add(locations.AddInput{Name: "X", Code: "X-1", Type: "contenedor", ParentID: &bodega.ID})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// una bodega no puede colgar de un pasillo (el orden es estricto)
	pasillo, err := uc.Add(locations.AddInput{Name: "P2", Code: "PAS-02", Type: "pasillo", ParentID: &bodega.ID})
	require.NoError(t, err)
	_, err = uc.Add(locations.AddInput{Name: "B2", Code: "BOD-05", Type: "bodega", ParentID: &pasillo.ID})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAdd_CodigoUnico(t *testing.T) {
	uc, _ := newFixture(t)
	mustAdd(t, uc, "Bodega", "BOD-04", "bodega", nil)

	_, err := uc.Add(locations.AddInput{Name: "Otra", Code: "BOD-04", Type: "bodega"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdate_ReparentRechazaCiclos(t *testing.T) {
	uc, _ := newFixture(t)

	bodega := mustAdd(t, uc, "Bodega", "BOD-04", "bodega", nil)
	pasillo := mustAdd(t, uc, "Pasillo", "PAS-01", "pasillo", &bodega.ID)
	estante := mustAdd(t, uc, "Estante", "EST-01", "estante", &pasillo.ID)

	// colgar el pasillo bajo su propio descendiente cierra un ciclo
	_, err := uc.Update(locations.UpdateInput{
		ID:       pasillo.ID,
		Name:     pasillo.Name,
		Code:     pasillo.Code,
		Type:     pasillo.Type,
		ParentID: &estante.ID,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdate_ReparentValido(t *testing.T) {
	uc, _ := newFixture(t)

	bodega := mustAdd(t, uc, "Bodega", "BOD-04", "bodega", nil)
	p1 := mustAdd(t, uc, "Pasillo 1", "PAS-01", "pasillo", &bodega.ID)
	p2 := mustAdd(t, uc, "Pasillo 2", "PAS-02", "pasillo", &bodega.ID)
	estante := mustAdd(t, uc, "Estante", "EST-01", "estante", &p1.ID)

	// mover el estante del pasillo 1 al 2: legal, solo se revalida
	updated, err := uc.Update(locations.UpdateInput{
		ID:       estante.ID,
		Name:     estante.Name,
		Code:     estante.Code,
		Type:     estante.Type,
		ParentID: &p2.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.ParentID)
	assert.Equal(t, p2.ID, *updated.ParentID)
}

func TestUpdate_CambioDeTipoRevalidaHijos(t *testing.T) {
	uc, _ := newFixture(t)

	bodega := mustAdd(t, uc, "Bodega", "BOD-04", "bodega", nil)
	mustAdd(t, uc, "Pasillo", "PAS-01", "pasillo", &bodega.ID)

	// bajar la bodega a estante dejaría la arista estante→pasillo, que
	// invierte el orden de la taxonomía
	_, err := uc.Update(locations.UpdateInput{
		ID:   bodega.ID,
		Name: bodega.Name,
		Code: bodega.Code,
		Type: "estante",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// el mismo cambio sobre un nodo sin hijos sí pasa
	estante := mustAdd(t, uc, "Estante", "EST-01", "estante", nil)
	updated, err := uc.Update(locations.UpdateInput{
		ID:   estante.ID,
		Name: estante.Name,
		Code: estante.Code,
		Type: "posicion",
	})
	require.NoError(t, err)
	assert.Equal(t, "posicion", updated.Type)
}

func TestDelete_Guardas(t *testing.T) {
	uc, store := newFixture(t)
	bodega := mustAdd(t, uc, "Bodega", "BOD-04", "bodega", nil)
	pasillo := mustAdd(t, uc, "Pasillo", "PAS-01", "pasillo", &bodega.ID)

	// con hijos no se borra
	err := uc.Delete(bodega.ID, "admin")
	assert.ErrorIs(t, err, domain.ErrConflict)

	// con unidades del ledger tampoco
	require.NoError(t, store.Units().Create(&entity.InventoryUnit{
		ID:         "u1",
		LocationID: pasillo.ID,
		Status:     entity.UnitStatusApplied,
	}))
	err = uc.Delete(pasillo.ID, "admin")
	assert.ErrorIs(t, err, domain.ErrConflict)

	// sin referencias sí
	libre := mustAdd(t, uc, "Pasillo libre", "PAS-99", "pasillo", &bodega.ID)
	require.NoError(t, uc.Delete(libre.ID, "admin"))
	assert.ErrorIs(t, uc.Delete(libre.ID, "admin"), domain.ErrNotFound)
}

func TestSelectable_HojasYCacheInvalidada(t *testing.T) {
	uc, _ := newFixture(t)

	bodega := mustAdd(t, uc, "Bodega", "BOD-04", "bodega", nil)
	leaves, err := uc.Selectable()
	require.NoError(t, err)
	require.Len(t, leaves, 1, "una bodega sin hijos es hoja")

	// al agregar un hijo, la bodega deja de ser hoja (la caché se invalida)
	pasillo := mustAdd(t, uc, "Pasillo", "PAS-01", "pasillo", &bodega.ID)
	leaves, err = uc.Selectable()
	require.NoError(t, err)
	require.Len(t, leaves, 1)
	assert.Equal(t, pasillo.ID, leaves[0].ID)
}

func TestChildren_SinPadresDevuelveRaices(t *testing.T) {
	uc, _ := newFixture(t)
	bodega := mustAdd(t, uc, "Bodega", "BOD-04", "bodega", nil)
	mustAdd(t, uc, "Pasillo", "PAS-01", "pasillo", &bodega.ID)

	roots, err := uc.Children(nil)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, bodega.ID, roots[0].ID)

	children, err := uc.Children([]string{bodega.ID})
	require.NoError(t, err)
	assert.Len(t, children, 1)
}

func TestRenderPath(t *testing.T) {
	uc, _ := newFixture(t)
	bodega := mustAdd(t, uc, "Bodega 04", "BOD-04", "bodega", nil)
	pasillo := mustAdd(t, uc, "Pasillo 01", "PAS-01", "pasillo", &bodega.ID)

	path, err := uc.RenderPath(pasillo.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bodega 04 / Pasillo 01", path)

	_, err = uc.RenderPath("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSearch_InsensibleAAcentos(t *testing.T) {
	uc, _ := newFixture(t)
	bodega := mustAdd(t, uc, "Bodegá Fría", "BOD-04", "bodega", nil)
	mustAdd(t, uc, "Pasillo 01", "PAS-01", "pasillo", &bodega.ID)

	// "bodega fria" sin acentos encuentra "Bodegá Fría"
	results, err := uc.Search("bodega fria")
	require.NoError(t, err)
	assert.Len(t, results, 2, "la bodega y su pasillo matchean por el prefijo del camino")

	results, err = uc.Search("pasillo")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Bodegá Fría / Pasillo 01", results[0].Path)

	results, err = uc.Search("no-aparece")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestAddBulk_RackCompletoONada(t *testing.T) {
	uc, store := newFixture(t)
	ctx := context.Background()

	bodega := mustAdd(t, uc, "Bodega", "BOD-04", "bodega", nil)
	estante := mustAdd(t, uc, "Estante A", "EST-A", "estante", &bodega.ID)

	created, err := uc.AddBulk(ctx, locations.BulkInput{
		Pattern:  hierarchy.BulkPatternRack,
		ParentID: estante.ID,
		Rack: hierarchy.RackParams{
			Rows: 2, Columns: 2, Levels: 1,
			CodePrefix: "EST-A",
			CellType:   "posicion",
		},
	})
	require.NoError(t, err)
	assert.Len(t, created, 4)

	// un lote que choca contra un código existente no crea nada
	before, err := store.Locations().ListAll()
	require.NoError(t, err)
	_, err = uc.AddBulk(ctx, locations.BulkInput{
		Pattern:  hierarchy.BulkPatternRack,
		ParentID: estante.ID,
		Rack: hierarchy.RackParams{
			Rows: 1, Columns: 1, Levels: 1,
			CodePrefix: "EST-A",
			CellType:   "posicion",
		},
	})
	assert.ErrorIs(t, err, domain.ErrValidation, "EST-A-F01-C01-N01 ya existe")
	after, err := store.Locations().ListAll()
	require.NoError(t, err)
	assert.Len(t, after, len(before), "el lote fallido no dejó filas")
}

func TestAddBulk_Clone(t *testing.T) {
	uc, _ := newFixture(t)
	ctx := context.Background()

	bodega := mustAdd(t, uc, "Bodega", "BOD-04", "bodega", nil)
	p1 := mustAdd(t, uc, "Pasillo 1", "PAS-01", "pasillo", &bodega.ID)
	mustAdd(t, uc, "Estante A", "EST-A", "estante", &p1.ID)
	mustAdd(t, uc, "Estante B", "EST-B", "estante", &p1.ID)

	created, err := uc.AddBulk(ctx, locations.BulkInput{
		Pattern:  hierarchy.BulkPatternClone,
		ParentID: bodega.ID,
		Clone: hierarchy.CloneParams{
			SourceRootID: p1.ID,
			CodeSuffix:   "C2",
		},
	})
	require.NoError(t, err)
	require.Len(t, created, 3, "pasillo + dos estantes")

	// la raíz clonada cuelga del destino; los estantes, del pasillo clonado
	require.NotNil(t, created[0].ParentID)
	assert.Equal(t, bodega.ID, *created[0].ParentID)
	for _, clone := range created[1:] {
		require.NotNil(t, clone.ParentID)
		assert.Equal(t, created[0].ID, *clone.ParentID)
	}
}

func TestSaveLevels_Validaciones(t *testing.T) {
	uc, _ := newFixture(t)

	assert.ErrorIs(t, uc.SaveLevels(nil), domain.ErrValidation)
	assert.ErrorIs(t, uc.SaveLevels([]entity.LocationLevel{
		{Type: "bodega", Name: "Bodega"},
		{Type: "bodega", Name: "Otra"},
	}), domain.ErrValidation, "tipos repetidos")

	require.NoError(t, uc.SaveLevels([]entity.LocationLevel{
		{Type: "zona", Name: "Zona"},
		{Type: "celda", Name: "Celda"},
	}))
	levels, err := uc.Levels()
	require.NoError(t, err)
	require.Len(t, levels, 2)
	assert.Equal(t, "zona", levels[0].Type)
}
