package hierarchy_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/hierarchy"
)

func loc(id, name, locType string, parentID *string) *entity.Location {
	now := time.Now()
	return &entity.Location{
		ID:        id,
		Name:      name,
		Code:      "C-" + id,
		Type:      locType,
		ParentID:  parentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func ptr(s string) *string { return &s }

// Árbol de prueba:
//
//	bodega (b1)
//	├── pasillo (p1)
//	│   ├── estante (e1)
//	│   └── estante (e2)
//	└── pasillo (p2)
func buildTree() *hierarchy.Tree {
	return hierarchy.NewTree([]*entity.Location{
		loc("b1", "Bodega 04", "bodega", nil),
		loc("p1", "Pasillo 01", "pasillo", ptr("b1")),
		loc("p2", "Pasillo 02", "pasillo", ptr("b1")),
		loc("e1", "Estante A", "estante", ptr("p1")),
		loc("e2", "Estante B", "estante", ptr("p1")),
	})
}

func TestTree_SelectableSonLasHojas(t *testing.T) {
	tree := buildTree()
	leaves := tree.Selectable()

	ids := make([]string, 0, len(leaves))
	for _, l := range leaves {
		ids = append(ids, l.ID)
	}
	// p2 no tiene hijos: es hoja aunque sea de tipo pasillo
	assert.ElementsMatch(t, []string{"e1", "e2", "p2"}, ids)
}

func TestTree_SelectableCambiaAlAgregarHijo(t *testing.T) {
	// una hoja deja de ser seleccionable en cuanto recibe un hijo
	tree := hierarchy.NewTree([]*entity.Location{
		loc("b1", "Bodega", "bodega", nil),
		loc("p1", "Pasillo", "pasillo", ptr("b1")),
		loc("e1", "Estante", "estante", ptr("p1")),
	})
	for _, l := range tree.Selectable() {
		assert.NotEqual(t, "p1", l.ID, "p1 tiene hijos, no puede ser hoja")
		assert.NotEqual(t, "b1", l.ID)
	}
}

func TestTree_RootsYChildren(t *testing.T) {
	tree := buildTree()

	roots := tree.Roots()
	require.Len(t, roots, 1)
	assert.Equal(t, "b1", roots[0].ID)

	children := tree.Children([]string{"b1"})
	assert.Len(t, children, 2)

	children = tree.Children([]string{"p1", "p2"})
	assert.Len(t, children, 2, "p1 tiene dos hijos, p2 ninguno")

	assert.Empty(t, tree.Children([]string{"e1"}))
	assert.True(t, tree.HasChildren("p1"))
	assert.False(t, tree.HasChildren("p2"))
}

func TestTree_PathRaizANodo(t *testing.T) {
	tree := buildTree()

	path, err := tree.Path("e1")
	require.NoError(t, err)
	assert.Equal(t, "Bodega 04 / Pasillo 01 / Estante A", path)

	path, err = tree.Path("b1")
	require.NoError(t, err)
	assert.Equal(t, "Bodega 04", path)
}

func TestTree_PathNodoInexistente(t *testing.T) {
	tree := buildTree()
	_, err := tree.Path("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTree_PathConCicloRetornaError(t *testing.T) {
	// a → b → a: datos corruptos; el recorrido debe fallar, no colgarse
	tree := hierarchy.NewTree([]*entity.Location{
		loc("a", "A", "bodega", ptr("b")),
		loc("b", "B", "pasillo", ptr("a")),
	})
	_, err := tree.Path("a")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidHierarchy))
}

func TestTree_WouldCycle(t *testing.T) {
	tree := buildTree()

	// colgar b1 bajo su descendiente e1 cerraría un ciclo
	assert.True(t, tree.WouldCycle("b1", "e1"))
	assert.True(t, tree.WouldCycle("p1", "e1"))
	// un nodo no puede ser su propio padre
	assert.True(t, tree.WouldCycle("p1", "p1"))

	// mover e1 bajo p2 es legal
	assert.False(t, tree.WouldCycle("e1", "p2"))
	// mover p2 bajo p1 es legal (p1 no desciende de p2)
	assert.False(t, tree.WouldCycle("p2", "p1"))
}

func TestLevelOrder_Precedes(t *testing.T) {
	order := hierarchy.NewLevelOrder([]entity.LocationLevel{
		{Type: "bodega", Name: "Bodega"},
		{Type: "pasillo", Name: "Pasillo"},
		{Type: "estante", Name: "Estante"},
	})

	assert.True(t, order.Contains("pasillo"))
	assert.False(t, order.Contains("contenedor"))

	assert.True(t, order.Precedes("bodega", "pasillo"))
	assert.True(t, order.Precedes("bodega", "estante"))
	assert.False(t, order.Precedes("pasillo", "bodega"), "un hijo no puede ser de nivel superior al padre")
	assert.False(t, order.Precedes("pasillo", "pasillo"), "el orden es estricto")
	assert.False(t, order.Precedes("bodega", "contenedor"), "tipos fuera de la taxonomía no preceden nada")
}
