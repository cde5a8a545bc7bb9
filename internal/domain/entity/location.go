package entity

import "time"

// LocationLevel describe un nivel de la taxonomía de ubicaciones (el "molde"):
// por ejemplo level1=Bodega ... level5=Ubicación. Es puramente descriptivo;
// no almacena datos por sí mismo. El orden de la lista define la profundidad.
type LocationLevel struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// Location representa un nodo del árbol físico de almacenamiento
// (bodega, pasillo, estantería, nivel, ubicación). Forma un bosque con raíz:
// ParentID nil = raíz. Una ubicación es "seleccionable" (hoja) si ninguna
// otra la declara como padre; eso se calcula, nunca se almacena.
type Location struct {
	ID       string
	Name     string
	Code     string // único en todo el árbol
	Type     string // debe coincidir con un LocationLevel.Type
	ParentID *string

	// Estado de candado consultivo (efímero, se sobreescribe en sitio).
	IsLocked          bool
	LockedBy          string
	LockedBySessionID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRoot indica si la ubicación no tiene padre.
func (l *Location) IsRoot() bool {
	return l.ParentID == nil || *l.ParentID == ""
}

// LockedByOther indica si el candado está tomado por una sesión distinta.
func (l *Location) LockedByOther(sessionID string) bool {
	return l.IsLocked && l.LockedBySessionID != sessionID
}
