package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement es una fila del log append-only de movimientos de cantidad entre
// ubicaciones (modo avanzado), independiente del ledger de unidades.
// FromLocationID nil = entrada externa; ToLocationID nil = salida del sistema.
type Movement struct {
	ID             string
	ItemID         string
	Quantity       decimal.Decimal
	FromLocationID *string
	ToLocationID   *string
	Timestamp      time.Time
	UserID         string
	Notes          string
}

// Inventory es la caché materializada de cantidad por producto+ubicación
// (modo avanzado). Derivada de los movimientos; se actualiza bajo
// SELECT FOR UPDATE en la misma transacción que el movimiento.
type Inventory struct {
	ID          string
	ItemID      string
	LocationID  string
	Quantity    decimal.Decimal
	LastUpdated time.Time
	UpdatedBy   string
}
