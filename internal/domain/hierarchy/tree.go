package hierarchy

import (
	"fmt"
	"strings"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// MaxDepth cota de seguridad para recorridos padre→raíz. Ninguna jerarquía
// real se acerca a esto; si el recorrido la supera hay un ciclo en los datos.
const MaxDepth = 64

// Tree es la estructura de adyacencia explícita del árbol de ubicaciones:
// se reconstruye desde las filas en cada operación estructural en lugar de
// perseguir punteros recursivamente.
type Tree struct {
	byID       map[string]*entity.Location
	childrenOf map[string][]string
	ordered    []*entity.Location
}

// NewTree construye la adyacencia a partir de las filas de ubicaciones.
func NewTree(locations []*entity.Location) *Tree {
	t := &Tree{
		byID:       make(map[string]*entity.Location, len(locations)),
		childrenOf: make(map[string][]string),
		ordered:    locations,
	}
	for _, loc := range locations {
		t.byID[loc.ID] = loc
	}
	for _, loc := range locations {
		if !loc.IsRoot() {
			pid := *loc.ParentID
			t.childrenOf[pid] = append(t.childrenOf[pid], loc.ID)
		}
	}
	return t
}

// Get devuelve la ubicación por id o nil.
func (t *Tree) Get(id string) *entity.Location {
	return t.byID[id]
}

// Selectable devuelve las ubicaciones hoja: las que ningún otro nodo declara
// como padre. O(n) sobre el set de ids referenciados como padre.
func (t *Tree) Selectable() []*entity.Location {
	var leaves []*entity.Location
	for _, loc := range t.ordered {
		if len(t.childrenOf[loc.ID]) == 0 {
			leaves = append(leaves, loc)
		}
	}
	return leaves
}

// Roots devuelve los nodos sin padre.
func (t *Tree) Roots() []*entity.Location {
	var roots []*entity.Location
	for _, loc := range t.ordered {
		if loc.IsRoot() {
			roots = append(roots, loc)
		}
	}
	return roots
}

// Children devuelve los hijos directos (un nivel) de los padres dados.
// Lo usa el Lock Manager para decidir el alcance en cascada de un candado.
func (t *Tree) Children(parentIDs []string) []*entity.Location {
	var out []*entity.Location
	for _, pid := range parentIDs {
		for _, cid := range t.childrenOf[pid] {
			out = append(out, t.byID[cid])
		}
	}
	return out
}

// HasChildren indica si la ubicación tiene al menos un hijo.
func (t *Tree) HasChildren(id string) bool {
	return len(t.childrenOf[id]) > 0
}

// Path recorre ParentID hasta la raíz y une los nombres de arriba hacia
// abajo ("Bodega 04 / Pasillo 01"). El recorrido es iterativo con set de
// visitados: si excede la cota o repite un nodo devuelve ErrInvalidHierarchy
// en lugar de ciclar para siempre (truncar en silencio engañaría al usuario
// sobre la ubicación física).
func (t *Tree) Path(id string) (string, error) {
	var names []string
	visited := make(map[string]bool)
	cur := t.byID[id]
	if cur == nil {
		return "", domain.ErrNotFound
	}
	for steps := 0; cur != nil; steps++ {
		if steps >= MaxDepth || visited[cur.ID] {
			return "", fmt.Errorf("recorrido desde %s: %w", id, domain.ErrInvalidHierarchy)
		}
		visited[cur.ID] = true
		names = append(names, cur.Name)
		if cur.IsRoot() {
			break
		}
		next := t.byID[*cur.ParentID]
		if next == nil {
			// padre colgante: se corta el camino pero no es un ciclo
			break
		}
		cur = next
	}
	// invertir: la raíz primero
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, " / "), nil
}

// WouldCycle determina si colgar nodeID bajo newParentID cerraría un ciclo:
// camina de newParentID hacia la raíz y verifica que nunca aparezca nodeID
// (un nodo no puede volverse padre de su propio ancestro... ni de sí mismo).
func (t *Tree) WouldCycle(nodeID, newParentID string) bool {
	visited := make(map[string]bool)
	cur := t.byID[newParentID]
	for steps := 0; cur != nil; steps++ {
		if cur.ID == nodeID {
			return true
		}
		if steps >= MaxDepth || visited[cur.ID] {
			// datos ya corruptos: tratar como ciclo para rechazar la escritura
			return true
		}
		visited[cur.ID] = true
		if cur.IsRoot() {
			return false
		}
		cur = t.byID[*cur.ParentID]
	}
	return false
}

// LevelOrder materializa el orden de la taxonomía de niveles para validar
// que el tipo del padre preceda al tipo del hijo.
type LevelOrder struct {
	index map[string]int
}

// NewLevelOrder construye el orden a partir de la lista configurada.
func NewLevelOrder(levels []entity.LocationLevel) LevelOrder {
	idx := make(map[string]int, len(levels))
	for i, lvl := range levels {
		idx[lvl.Type] = i
	}
	return LevelOrder{index: idx}
}

// Contains indica si el tipo existe en la taxonomía.
func (o LevelOrder) Contains(locType string) bool {
	_, ok := o.index[locType]
	return ok
}

// Precedes indica si parentType va estrictamente antes que childType en la
// taxonomía (un pasillo puede colgar de una bodega, nunca al revés).
func (o LevelOrder) Precedes(parentType, childType string) bool {
	pi, pok := o.index[parentType]
	ci, cok := o.index[childType]
	return pok && cok && pi < ci
}
