package hierarchy

import (
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain"
)

// Patrones soportados por la creación masiva de ubicaciones.
const (
	BulkPatternRack  = "rack"
	BulkPatternClone = "clone"
)

// NodeSpec describe una ubicación por crear dentro de un lote. ParentIndex
// apunta al índice de su padre dentro del mismo lote, o -1 cuando el padre
// es la ubicación destino ya existente. El caso de uso asigna los IDs reales
// y persiste todo el lote en una sola transacción.
type NodeSpec struct {
	Name        string
	Code        string
	Type        string
	ParentIndex int
}

// RackParams parámetros del patrón rack: una grilla completa de hijos bajo
// un padre a partir de conteos de filas, columnas y niveles.
type RackParams struct {
	Rows       int
	Columns    int
	Levels     int
	CodePrefix string // prefijo del código de cada celda (ej. "EST-A")
	CellType   string // tipo de taxonomía de las celdas generadas
}

// BuildRackGrid genera las celdas de la grilla: Rows × Columns × Levels
// hijos directos del padre, con códigos F/C/N deterministas.
func BuildRackGrid(p RackParams) ([]NodeSpec, error) {
	if p.Rows <= 0 || p.Columns <= 0 || p.Levels <= 0 {
		return nil, fmt.Errorf("grilla %dx%dx%d: %w", p.Rows, p.Columns, p.Levels, domain.ErrValidation)
	}
	if p.CodePrefix == "" || p.CellType == "" {
		return nil, fmt.Errorf("rack sin prefijo o tipo: %w", domain.ErrValidation)
	}
	specs := make([]NodeSpec, 0, p.Rows*p.Columns*p.Levels)
	for r := 1; r <= p.Rows; r++ {
		for c := 1; c <= p.Columns; c++ {
			for n := 1; n <= p.Levels; n++ {
				specs = append(specs, NodeSpec{
					Name:        fmt.Sprintf("Fila %02d Columna %02d Nivel %02d", r, c, n),
					Code:        fmt.Sprintf("%s-F%02d-C%02d-N%02d", p.CodePrefix, r, c, n),
					Type:        p.CellType,
					ParentIndex: -1,
				})
			}
		}
	}
	return specs, nil
}

// CloneParams parámetros del patrón clone: duplicar la forma de un subárbol
// existente bajo un padre nuevo. CodeSuffix diferencia los códigos clonados
// (los códigos son únicos en todo el árbol).
type CloneParams struct {
	SourceRootID string
	CodeSuffix   string
}

// CloneSubtree recorre el subárbol fuente en preorden y produce los specs
// del duplicado. La raíz clonada queda con ParentIndex -1 (cuelga del
// destino); el resto referencia a su padre dentro del lote.
func CloneSubtree(t *Tree, p CloneParams) ([]NodeSpec, error) {
	root := t.Get(p.SourceRootID)
	if root == nil {
		return nil, fmt.Errorf("subárbol fuente %s: %w", p.SourceRootID, domain.ErrNotFound)
	}
	if p.CodeSuffix == "" {
		return nil, fmt.Errorf("clone sin sufijo de código: %w", domain.ErrValidation)
	}

	var specs []NodeSpec
	// pila de (id fuente, índice del padre clonado); el guardián de
	// visitados convierte un ciclo en error en vez de un clon infinito
	type frame struct {
		sourceID    string
		parentIndex int
	}
	visited := make(map[string]bool)
	stack := []frame{{sourceID: root.ID, parentIndex: -1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[f.sourceID] {
			return nil, fmt.Errorf("clonando %s: %w", p.SourceRootID, domain.ErrInvalidHierarchy)
		}
		visited[f.sourceID] = true

		src := t.Get(f.sourceID)
		specs = append(specs, NodeSpec{
			Name:        src.Name,
			Code:        src.Code + "-" + p.CodeSuffix,
			Type:        src.Type,
			ParentIndex: f.parentIndex,
		})
		myIndex := len(specs) - 1
		for _, child := range t.Children([]string{f.sourceID}) {
			stack = append(stack, frame{sourceID: child.ID, parentIndex: myIndex})
		}
	}
	return specs, nil
}
