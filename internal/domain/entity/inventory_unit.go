package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una unidad de inventario.
// pending --aplicar--> applied --corregir--> voided (y nace una nueva applied).
// Ninguna transición regresa a pending.
const (
	UnitStatusPending = "pending"
	UnitStatusApplied = "applied"
	UnitStatusVoided  = "voided"
)

// InventoryUnit es una entrada del ledger: un recibo físico de una cantidad
// de un producto en una ubicación en un momento dado. El ledger es
// append-only: una corrección nunca sobreescribe la historia, la reemplaza
// con una fila nueva encadenada (CorrectedFromUnitID).
type InventoryUnit struct {
	ID                    string
	UnitCode              string // token opaco escaneable, derivado del consecutivo
	ReceptionConsecutive  string // asignado al crear (REC-00001)
	CorrectionConsecutive *string // asignado solo cuando esta fila anula otra (COR-00001)
	CorrectedFromUnitID   *string // apunta a la fila que esta corrección reemplaza

	ProductID       string
	HumanReadableID string // etiqueta de lote/estiba
	DocumentID      string
	ERPDocumentID   string
	LocationID      string
	Quantity        decimal.Decimal
	Notes           string

	Status string

	CreatedAt time.Time
	CreatedBy string

	AppliedAt *time.Time
	AppliedBy string

	AnnulledAt *time.Time
	AnnulledBy string
}

// CanApply indica si la unidad puede pasar a applied.
func (u *InventoryUnit) CanApply() bool { return u.Status == UnitStatusPending }

// CanCorrect indica si la unidad admite una corrección encadenada.
// Las pending se editan directo (applyInventoryUnit); las voided son inmutables.
func (u *InventoryUnit) CanCorrect() bool { return u.Status == UnitStatusApplied }

// Applied devuelve la fila lógica resultante de aplicar la unidad con los
// valores corregidos en vuelo. No muta el receptor: las transiciones se
// expresan como funciones que producen una fila nueva.
func (u InventoryUnit) Applied(productID string, quantity decimal.Decimal, humanReadableID, documentID, erpDocumentID, appliedBy string, now time.Time) InventoryUnit {
	u.ProductID = productID
	u.Quantity = quantity
	u.HumanReadableID = humanReadableID
	u.DocumentID = documentID
	u.ERPDocumentID = erpDocumentID
	u.Status = UnitStatusApplied
	u.AppliedAt = &now
	u.AppliedBy = appliedBy
	return u
}

// Voided devuelve la fila lógica anulada: conserva producto, cantidad y
// ubicación intactos (historia inmutable) y recibe su consecutivo de
// corrección. Después de esto la fila no se toca nunca más.
func (u InventoryUnit) Voided(correctionConsecutive, annulledBy string, now time.Time) InventoryUnit {
	u.Status = UnitStatusVoided
	u.CorrectionConsecutive = &correctionConsecutive
	u.AnnulledAt = &now
	u.AnnulledBy = annulledBy
	return u
}

// Correction construye la fila nueva que reemplaza a u dentro de la cadena:
// nace applied, con consecutivo de recepción propio y el back-reference
// CorrectedFromUnitID apuntando a u.
func (u InventoryUnit) Correction(id, unitCode, receptionConsecutive, productID string, quantity decimal.Decimal, humanReadableID, documentID, erpDocumentID, createdBy string, now time.Time) InventoryUnit {
	from := u.ID
	return InventoryUnit{
		ID:                   id,
		UnitCode:             unitCode,
		ReceptionConsecutive: receptionConsecutive,
		CorrectedFromUnitID:  &from,
		ProductID:            productID,
		HumanReadableID:      humanReadableID,
		DocumentID:           documentID,
		ERPDocumentID:        erpDocumentID,
		LocationID:           u.LocationID,
		Quantity:             quantity,
		Notes:                u.Notes,
		Status:               UnitStatusApplied,
		CreatedAt:            now,
		CreatedBy:            createdBy,
		AppliedAt:            &now,
		AppliedBy:            createdBy,
	}
}
