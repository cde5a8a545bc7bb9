package hierarchy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/hierarchy"
)

func TestBuildRackGrid_GeneraLaGrillaCompleta(t *testing.T) {
	specs, err := hierarchy.BuildRackGrid(hierarchy.RackParams{
		Rows:       2,
		Columns:    3,
		Levels:     2,
		CodePrefix: "EST-A",
		CellType:   "posicion",
	})
	require.NoError(t, err)
	require.Len(t, specs, 12, "2 filas × 3 columnas × 2 niveles")

	assert.Equal(t, "EST-A-F01-C01-N01", specs[0].Code)
	assert.Equal(t, "EST-A-F02-C03-N02", specs[len(specs)-1].Code)

	seen := make(map[string]bool)
	for _, s := range specs {
		assert.Equal(t, "posicion", s.Type)
		assert.Equal(t, -1, s.ParentIndex, "todas las celdas cuelgan del destino")
		assert.False(t, seen[s.Code], "códigos repetidos en la grilla: %s", s.Code)
		seen[s.Code] = true
	}
}

func TestBuildRackGrid_ParametrosInvalidos(t *testing.T) {
	_, err := hierarchy.BuildRackGrid(hierarchy.RackParams{Rows: 0, Columns: 3, Levels: 1, CodePrefix: "X", CellType: "posicion"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = hierarchy.BuildRackGrid(hierarchy.RackParams{Rows: 1, Columns: 1, Levels: 1, CellType: "posicion"})
	assert.ErrorIs(t, err, domain.ErrValidation, "prefijo vacío")
}

func TestCloneSubtree_DuplicaLaForma(t *testing.T) {
	tree := buildTree()

	specs, err := hierarchy.CloneSubtree(tree, hierarchy.CloneParams{
		SourceRootID: "p1",
		CodeSuffix:   "COPIA",
	})
	require.NoError(t, err)
	require.Len(t, specs, 3, "p1 + sus dos estantes")

	// la raíz clonada cuelga del destino; el resto de su padre en el lote
	assert.Equal(t, -1, specs[0].ParentIndex)
	assert.Equal(t, "C-p1-COPIA", specs[0].Code)
	for _, s := range specs[1:] {
		assert.Equal(t, 0, s.ParentIndex)
	}
}

func TestCloneSubtree_FuenteInexistente(t *testing.T) {
	_, err := hierarchy.CloneSubtree(buildTree(), hierarchy.CloneParams{
		SourceRootID: "no-existe",
		CodeSuffix:   "X",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCloneSubtree_SinSufijo(t *testing.T) {
	_, err := hierarchy.CloneSubtree(buildTree(), hierarchy.CloneParams{SourceRootID: "p1"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
