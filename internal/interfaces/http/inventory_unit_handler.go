package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// InventoryUnitHandler maneja las peticiones HTTP del ledger de unidades.
type InventoryUnitHandler struct {
	uc *ledger.LedgerUseCase
}

// NewInventoryUnitHandler construye el handler.
func NewInventoryUnitHandler(uc *ledger.LedgerUseCase) *InventoryUnitHandler {
	return &InventoryUnitHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar recepción (unidad pending)
// @Description  Toma el siguiente consecutivo de recepción y deriva el
// @Description  unitCode en la misma transacción.
// @Tags         inventory-units
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryUnitRequest  true  "product_id, location_id, quantity"
// @Success      201   {object}  dto.InventoryUnitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory-units [post]
func (h *InventoryUnitHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventoryUnitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	unit, err := h.uc.Add(c.Context(), ledger.AddInput{
		ProductID:       in.ProductID,
		LocationID:      in.LocationID,
		Quantity:        in.Quantity,
		HumanReadableID: in.HumanReadableID,
		DocumentID:      in.DocumentID,
		ERPDocumentID:   in.ERPDocumentID,
		CreatedBy:       GetUserID(c),
		Notes:           in.Notes,
	})
	if err != nil {
		return unitError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toUnitResponse(unit, ""))
}

// Apply godoc
// @Summary      Aplicar unidad pending
// @Description  Finaliza los valores y pasa la unidad a applied. Solo
// @Description  pending puede aplicarse.
// @Tags         inventory-units
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la unidad"
// @Param        body  body  dto.ApplyInventoryUnitRequest  true  "valores finales"
// @Success      200   {object}  dto.InventoryUnitResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory-units/{id}/apply [post]
func (h *InventoryUnitHandler) Apply(c *fiber.Ctx) error {
	var in dto.ApplyInventoryUnitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	unit, err := h.uc.Apply(c.Context(), ledger.ApplyInput{
		UnitID:          c.Params("id"),
		ProductID:       in.ProductID,
		Quantity:        in.Quantity,
		HumanReadableID: in.HumanReadableID,
		DocumentID:      in.DocumentID,
		ERPDocumentID:   in.ERPDocumentID,
		UpdatedBy:       GetUserID(c),
	})
	if err != nil {
		return unitError(c, err)
	}
	return c.JSON(toUnitResponse(unit, ""))
}

// Correct godoc
// @Summary      Corregir unidad applied
// @Description  Anula la fila vigente (voided, con consecutivo de
// @Description  corrección) y crea una fila nueva applied encadenada a la
// @Description  anulada. Ninguna fila se sobreescribe.
// @Tags         inventory-units
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la unidad vigente"
// @Param        body  body  dto.CorrectInventoryUnitRequest  true  "valores corregidos"
// @Success      201   {object}  dto.InventoryUnitResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory-units/{id}/correct [post]
func (h *InventoryUnitHandler) Correct(c *fiber.Ctx) error {
	var in dto.CorrectInventoryUnitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	unit, err := h.uc.Correct(c.Context(), ledger.CorrectInput{
		UnitID:          c.Params("id"),
		ProductID:       in.ProductID,
		Quantity:        in.Quantity,
		HumanReadableID: in.HumanReadableID,
		DocumentID:      in.DocumentID,
		ERPDocumentID:   in.ERPDocumentID,
		Actor:           GetUserID(c),
	})
	if err != nil {
		return unitError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toUnitResponse(unit, ""))
}

// Discard godoc
// @Summary      Descartar unidad pending
// @Description  Solo pending es descartable; applied y voided son historia.
// @Tags         inventory-units
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la unidad"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory-units/{id} [delete]
func (h *InventoryUnitHandler) Discard(c *fiber.Ctx) error {
	if err := h.uc.DiscardPending(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return unitError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Search godoc
// @Summary      Buscar en el ledger
// @Description  Más recientes primero. Por defecto oculta anuladas;
// @Description  show_voided=true muestra la cadena completa.
// @Tags         inventory-units
// @Security     Bearer
// @Produce      json
// @Param        from                  query  string  false  "RFC 3339"
// @Param        to                    query  string  false  "RFC 3339"
// @Param        product_id            query  string  false  "filtrar por producto"
// @Param        human_readable_id     query  string  false  "lote / serial"
// @Param        unit_code             query  string  false  "unitCode exacto"
// @Param        document_id           query  string  false  "documento propio o del ERP"
// @Param        reception_consecutive query  string  false  "REC-xxxxx"
// @Param        show_voided           query  bool    false  "incluir anuladas"
// @Param        status                query  string  false  "pending | all"
// @Param        limit                 query  int     false  "máx. filas"
// @Param        offset                query  int     false  "desplazamiento"
// @Success      200  {object}  dto.InventoryUnitListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory-units [get]
func (h *InventoryUnitHandler) Search(c *fiber.Ctx) error {
	filters := repository.UnitSearchFilters{
		ProductID:            c.Query("product_id"),
		HumanReadableID:      c.Query("human_readable_id"),
		UnitCode:             c.Query("unit_code"),
		DocumentID:           c.Query("document_id"),
		ReceptionConsecutive: c.Query("reception_consecutive"),
		ShowVoided:           c.QueryBool("show_voided"),
		StatusFilter:         c.Query("status"),
		Limit:                c.QueryInt("limit"),
		Offset:               c.QueryInt("offset"),
	}
	for q, dst := range map[string]**time.Time{"from": &filters.From, "to": &filters.To} {
		if raw := c.Query(q); raw != "" {
			t, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: q + " debe ser RFC 3339"})
			}
			*dst = &t
		}
	}
	results, err := h.uc.Search(filters)
	if err != nil {
		return unitError(c, err)
	}
	out := dto.InventoryUnitListResponse{
		Items: make([]dto.InventoryUnitResponse, 0, len(results)),
		Page:  dto.PageResponse{Limit: filters.Limit, Offset: filters.Offset},
	}
	for _, r := range results {
		out.Items = append(out.Items, toUnitResponse(r.Unit, r.ProductDescription))
	}
	return c.JSON(out)
}

// MigrateLegacy godoc
// @Summary      Backfill de filas pre-ledger
// @Description  Asigna consecutivo y unitCode a filas antiguas sin ellos.
// @Description  Idempotente: una segunda corrida no migra nada.
// @Tags         inventory-units
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MigrateLegacyResponse
// @Router       /api/inventory-units/migrate-legacy [post]
func (h *InventoryUnitHandler) MigrateLegacy(c *fiber.Ctx) error {
	n, err := h.uc.MigrateLegacy(c.Context())
	if err != nil {
		return unitError(c, err)
	}
	return c.JSON(dto.MigrateLegacyResponse{Migrated: n})
}

func unitError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "unidad no encontrada"})
	case errors.Is(err, domain.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidState):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func toUnitResponse(u *entity.InventoryUnit, productDescription string) dto.InventoryUnitResponse {
	return dto.InventoryUnitResponse{
		ID:                    u.ID,
		UnitCode:              u.UnitCode,
		ReceptionConsecutive:  u.ReceptionConsecutive,
		CorrectionConsecutive: u.CorrectionConsecutive,
		CorrectedFromUnitID:   u.CorrectedFromUnitID,
		ProductID:             u.ProductID,
		ProductDescription:    productDescription,
		HumanReadableID:       u.HumanReadableID,
		DocumentID:            u.DocumentID,
		ERPDocumentID:         u.ERPDocumentID,
		LocationID:            u.LocationID,
		Quantity:              u.Quantity,
		Notes:                 u.Notes,
		Status:                u.Status,
		CreatedAt:             u.CreatedAt,
		CreatedBy:             u.CreatedBy,
		AppliedAt:             u.AppliedAt,
		AppliedBy:             u.AppliedBy,
		AnnulledAt:            u.AnnulledAt,
		AnnulledBy:            u.AnnulledBy,
	}
}
