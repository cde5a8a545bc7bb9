package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.InventoryUnitRepository = (*InventoryUnitRepo)(nil)

// InventoryUnitRepo implementación del ledger sobre PostgreSQL (usable con
// pool o tx). El ledger es append-only a nivel de API: Update solo existe
// para las transiciones de estado y el backfill legacy.
type InventoryUnitRepo struct {
	q Querier
}

// NewInventoryUnitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryUnitRepository(q Querier) *InventoryUnitRepo {
	return &InventoryUnitRepo{q: q}
}

const unitColumns = `id, unit_code, reception_consecutive, correction_consecutive, corrected_from_unit_id,
		product_id, human_readable_id, document_id, erp_document_id, location_id, quantity, notes,
		status, created_at, created_by, applied_at, applied_by, annulled_at, annulled_by`

func scanUnit(row pgx.Row) (*entity.InventoryUnit, error) {
	var u entity.InventoryUnit
	var appliedBy, annulledBy *string
	err := row.Scan(
		&u.ID, &u.UnitCode, &u.ReceptionConsecutive, &u.CorrectionConsecutive, &u.CorrectedFromUnitID,
		&u.ProductID, &u.HumanReadableID, &u.DocumentID, &u.ERPDocumentID, &u.LocationID, &u.Quantity, &u.Notes,
		&u.Status, &u.CreatedAt, &u.CreatedBy, &u.AppliedAt, &appliedBy, &u.AnnulledAt, &annulledBy,
	)
	if err != nil {
		return nil, err
	}
	if appliedBy != nil {
		u.AppliedBy = *appliedBy
	}
	if annulledBy != nil {
		u.AnnulledBy = *annulledBy
	}
	return &u, nil
}

// Create persiste una unidad nueva del ledger.
func (r *InventoryUnitRepo) Create(u *entity.InventoryUnit) error {
	query := `
		INSERT INTO inventory_units (id, unit_code, reception_consecutive, correction_consecutive, corrected_from_unit_id,
			product_id, human_readable_id, document_id, erp_document_id, location_id, quantity, notes,
			status, created_at, created_by, applied_at, applied_by, annulled_at, annulled_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(context.Background(), query,
		u.ID, u.UnitCode, u.ReceptionConsecutive, u.CorrectionConsecutive, u.CorrectedFromUnitID,
		u.ProductID, u.HumanReadableID, u.DocumentID, u.ERPDocumentID, u.LocationID, u.Quantity, u.Notes,
		u.Status, u.CreatedAt, u.CreatedBy, u.AppliedAt, nullIfEmpty(u.AppliedBy), u.AnnulledAt, nullIfEmpty(u.AnnulledBy),
	)
	if err != nil {
		return fmt.Errorf("insert inventory unit: %w", err)
	}
	return nil
}

// GetByID obtiene una unidad por ID.
func (r *InventoryUnitRepo) GetByID(id string) (*entity.InventoryUnit, error) {
	query := `SELECT ` + unitColumns + ` FROM inventory_units WHERE id = $1`
	u, err := scanUnit(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory unit: %w", err)
	}
	return u, nil
}

// GetForUpdate obtiene la unidad y bloquea la fila (SELECT FOR UPDATE) para
// la transición de estado.
func (r *InventoryUnitRepo) GetForUpdate(id string) (*entity.InventoryUnit, error) {
	query := `SELECT ` + unitColumns + ` FROM inventory_units WHERE id = $1 FOR UPDATE`
	u, err := scanUnit(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory unit for update: %w", err)
	}
	return u, nil
}

// Update reescribe la fila. Solo lo invocan las transiciones de estado y la
// migración legacy; la inmutabilidad de applied/voided la garantiza el caso
// de uso.
func (r *InventoryUnitRepo) Update(u *entity.InventoryUnit) error {
	query := `
		UPDATE inventory_units SET
			unit_code = $2, reception_consecutive = $3, correction_consecutive = $4,
			product_id = $5, human_readable_id = $6, document_id = $7, erp_document_id = $8,
			quantity = $9, notes = $10, status = $11,
			applied_at = $12, applied_by = $13, annulled_at = $14, annulled_by = $15
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		u.ID, u.UnitCode, u.ReceptionConsecutive, u.CorrectionConsecutive,
		u.ProductID, u.HumanReadableID, u.DocumentID, u.ERPDocumentID,
		u.Quantity, u.Notes, u.Status,
		u.AppliedAt, nullIfEmpty(u.AppliedBy), u.AnnulledAt, nullIfEmpty(u.AnnulledBy),
	)
	if err != nil {
		return fmt.Errorf("update inventory unit: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update inventory unit %s: fila no encontrada", u.ID)
	}
	return nil
}

// Delete borra una unidad (solo pending descartadas).
func (r *InventoryUnitRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM inventory_units WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory unit: %w", err)
	}
	return nil
}

// Search consulta el ledger con filtros dinámicos, más recientes primero.
// Las voided quedan fuera salvo ShowVoided.
func (r *InventoryUnitRepo) Search(f repository.UnitSearchFilters) ([]*entity.InventoryUnit, error) {
	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if !f.ShowVoided {
		conds = append(conds, "status <> "+arg(entity.UnitStatusVoided))
	}
	if f.StatusFilter == repository.StatusFilterPending {
		conds = append(conds, "status = "+arg(entity.UnitStatusPending))
	}
	if f.From != nil {
		conds = append(conds, "created_at >= "+arg(*f.From))
	}
	if f.To != nil {
		conds = append(conds, "created_at <= "+arg(*f.To))
	}
	if f.ProductID != "" {
		conds = append(conds, "product_id = "+arg(f.ProductID))
	}
	if f.HumanReadableID != "" {
		conds = append(conds, "human_readable_id = "+arg(f.HumanReadableID))
	}
	if f.UnitCode != "" {
		conds = append(conds, "unit_code = "+arg(f.UnitCode))
	}
	if f.DocumentID != "" {
		conds = append(conds, "(document_id = "+arg(f.DocumentID)+" OR erp_document_id = $"+strconv.Itoa(len(args))+")")
	}
	if f.ReceptionConsecutive != "" {
		conds = append(conds, "reception_consecutive = "+arg(f.ReceptionConsecutive))
	}

	query := `SELECT ` + unitColumns + ` FROM inventory_units`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	query += " LIMIT " + arg(limit) + " OFFSET " + arg(f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("search inventory units: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryUnit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory unit: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// ListLegacy devuelve las filas pre-ledger sin consecutivo de recepción.
func (r *InventoryUnitRepo) ListLegacy() ([]*entity.InventoryUnit, error) {
	query := `SELECT ` + unitColumns + ` FROM inventory_units
		WHERE reception_consecutive IS NULL OR reception_consecutive = ''
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list legacy units: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryUnit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory unit: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// CountActiveByLocation cuenta unidades no anuladas en una ubicación
// (guardia para el borrado de ubicaciones).
func (r *InventoryUnitRepo) CountActiveByLocation(locationID string) (int, error) {
	query := `SELECT count(*) FROM inventory_units WHERE location_id = $1 AND status <> $2`
	var n int
	err := r.q.QueryRow(context.Background(), query, locationID, entity.UnitStatusVoided).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count units by location: %w", err)
	}
	return n, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
