package entity

import "time"

// Modos de asignación producto→ubicación (modo simple, sin cantidades).
const (
	AssignModeMove      = "move"        // la nueva ubicación reemplaza a las anteriores
	AssignModeAddAndMix = "add_and_mix" // se agrega junto a las existentes
)

// ItemLocation mapea un producto a una ubicación en modo simple. Un producto
// puede tener varias filas (varias ubicaciones válidas) y una ubicación puede
// contener varios productos salvo que la política lo restrinja.
type ItemLocation struct {
	ID                  string
	ItemID              string
	LocationID          string
	ClientID            *string
	IsExclusive         bool
	RequiresCertificate bool
	UpdatedBy           string
	UpdatedAt           time.Time
}

// AssignmentConflict resultado de la verificación previa a una asignación.
// Es solo una advertencia para la UI: nunca bloquea la escritura.
type AssignmentConflict struct {
	ProductHasOtherLocations bool
	LocationHasOtherProducts bool
	ConflictingProduct       string
}
