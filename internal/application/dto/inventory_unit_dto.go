package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInventoryUnitRequest entrada para registrar una recepción.
type CreateInventoryUnitRequest struct {
	ProductID       string          `json:"product_id" validate:"required"`
	LocationID      string          `json:"location_id" validate:"required"`
	Quantity        decimal.Decimal `json:"quantity" validate:"required"`
	HumanReadableID string          `json:"human_readable_id"`
	DocumentID      string          `json:"document_id"`
	ERPDocumentID   string          `json:"erp_document_id"`
	Notes           string          `json:"notes"`
}

// ApplyInventoryUnitRequest valores finales al aplicar una unidad pending.
type ApplyInventoryUnitRequest struct {
	ProductID       string          `json:"product_id" validate:"required"`
	Quantity        decimal.Decimal `json:"quantity" validate:"required"`
	HumanReadableID string          `json:"human_readable_id"`
	DocumentID      string          `json:"document_id"`
	ERPDocumentID   string          `json:"erp_document_id"`
}

// CorrectInventoryUnitRequest valores corregidos para una unidad applied.
type CorrectInventoryUnitRequest struct {
	ProductID       string          `json:"product_id" validate:"required"`
	Quantity        decimal.Decimal `json:"quantity" validate:"required"`
	HumanReadableID string          `json:"human_readable_id"`
	DocumentID      string          `json:"document_id"`
	ERPDocumentID   string          `json:"erp_document_id"`
}

// InventoryUnitResponse salida de una unidad del ledger.
type InventoryUnitResponse struct {
	ID                    string          `json:"id"`
	UnitCode              string          `json:"unit_code"`
	ReceptionConsecutive  string          `json:"reception_consecutive"`
	CorrectionConsecutive *string         `json:"correction_consecutive,omitempty"`
	CorrectedFromUnitID   *string         `json:"corrected_from_unit_id,omitempty"`
	ProductID             string          `json:"product_id"`
	ProductDescription    string          `json:"product_description,omitempty"`
	HumanReadableID       string          `json:"human_readable_id,omitempty"`
	DocumentID            string          `json:"document_id,omitempty"`
	ERPDocumentID         string          `json:"erp_document_id,omitempty"`
	LocationID            string          `json:"location_id"`
	Quantity              decimal.Decimal `json:"quantity"`
	Notes                 string          `json:"notes,omitempty"`
	Status                string          `json:"status"`
	CreatedAt             time.Time       `json:"created_at"`
	CreatedBy             string          `json:"created_by"`
	AppliedAt             *time.Time      `json:"applied_at,omitempty"`
	AppliedBy             string          `json:"applied_by,omitempty"`
	AnnulledAt            *time.Time      `json:"annulled_at,omitempty"`
	AnnulledBy            string          `json:"annulled_by,omitempty"`
}

// InventoryUnitListResponse lista del ledger (más recientes primero).
type InventoryUnitListResponse struct {
	Items []InventoryUnitResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// MigrateLegacyResponse resultado del backfill de filas pre-ledger.
type MigrateLegacyResponse struct {
	Migrated int `json:"migrated"`
}
