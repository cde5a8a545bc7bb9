package entity

import "time"

// Product es el catálogo mínimo consumido por este módulo: id → descripción,
// usado solo para presentación en búsquedas. La validez del ledger nunca
// depende del catálogo.
type Product struct {
	ID          string
	SKU         string
	Description string
	CreatedAt   time.Time
}
