package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssignItemRequest entrada para asignar producto→ubicación (modo simple).
type AssignItemRequest struct {
	ItemID              string  `json:"item_id" validate:"required"`
	LocationID          string  `json:"location_id" validate:"required"`
	ClientID            *string `json:"client_id"`
	IsExclusive         bool    `json:"is_exclusive"`
	RequiresCertificate bool    `json:"requires_certificate"`
	Mode                string  `json:"mode" validate:"required,oneof=move add_and_mix"`
}

// ItemLocationResponse salida de una asignación.
type ItemLocationResponse struct {
	ID                  string    `json:"id"`
	ItemID              string    `json:"item_id"`
	LocationID          string    `json:"location_id"`
	ClientID            *string   `json:"client_id,omitempty"`
	IsExclusive         bool      `json:"is_exclusive"`
	RequiresCertificate bool      `json:"requires_certificate"`
	UpdatedBy           string    `json:"updated_by"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// AssignmentConflictResponse advertencia previa a asignar; nunca bloquea.
type AssignmentConflictResponse struct {
	ProductHasOtherLocations bool   `json:"product_has_other_locations"`
	LocationHasOtherProducts bool   `json:"location_has_other_products"`
	ConflictingProduct       string `json:"conflicting_product,omitempty"`
}

// TransferRequest movimiento de cantidad (modo avanzado). from_location_id
// nulo = entrada externa; to_location_id nulo = salida del sistema.
type TransferRequest struct {
	ItemID         string          `json:"item_id" validate:"required"`
	Quantity       decimal.Decimal `json:"quantity" validate:"required"`
	FromLocationID *string         `json:"from_location_id"`
	ToLocationID   *string         `json:"to_location_id"`
	Notes          string          `json:"notes"`
}

// MovementResponse una fila del log de movimientos.
type MovementResponse struct {
	ID             string          `json:"id"`
	ItemID         string          `json:"item_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	FromLocationID *string         `json:"from_location_id,omitempty"`
	ToLocationID   *string         `json:"to_location_id,omitempty"`
	Timestamp      time.Time       `json:"timestamp"`
	UserID         string          `json:"user_id"`
	Notes          string          `json:"notes,omitempty"`
}

// MovementListResponse historial de movimientos de un producto.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
