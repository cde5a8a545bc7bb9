package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/assignment"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// AssignmentHandler maneja asignaciones producto→ubicación y movimientos
// de cantidad.
type AssignmentHandler struct {
	uc *assignment.AssignmentUseCase
}

// NewAssignmentHandler construye el handler.
func NewAssignmentHandler(uc *assignment.AssignmentUseCase) *AssignmentHandler {
	return &AssignmentHandler{uc: uc}
}

// Assign godoc
// @Summary      Asignar producto a ubicación
// @Description  mode=move reubica (elimina asignaciones previas del
// @Description  producto); mode=add_and_mix agrega sin tocar las existentes.
// @Tags         assignments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssignItemRequest  true  "item_id, location_id, mode"
// @Success      201   {object}  dto.ItemLocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/assignments [post]
func (h *AssignmentHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	row, err := h.uc.Assign(c.Context(), assignment.AssignInput{
		ItemID:              in.ItemID,
		LocationID:          in.LocationID,
		ClientID:            in.ClientID,
		IsExclusive:         in.IsExclusive,
		RequiresCertificate: in.RequiresCertificate,
		Actor:               GetUserID(c),
		Mode:                in.Mode,
	})
	if err != nil {
		return assignmentError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toItemLocationResponse(row))
}

// CheckConflict godoc
// @Summary      Chequeo de conflicto previo a asignar
// @Description  Advierte, nunca bloquea: la decisión queda del lado del
// @Description  cliente.
// @Tags         assignments
// @Security     Bearer
// @Produce      json
// @Param        item_id      query  string  true  "producto"
// @Param        location_id  query  string  true  "ubicación"
// @Success      200  {object}  dto.AssignmentConflictResponse
// @Router       /api/assignments/check-conflict [get]
func (h *AssignmentHandler) CheckConflict(c *fiber.Ctx) error {
	itemID, locationID := c.Query("item_id"), c.Query("location_id")
	if itemID == "" || locationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item_id y location_id son requeridos"})
	}
	conflict, err := h.uc.CheckConflict(itemID, locationID)
	if err != nil {
		return assignmentError(c, err)
	}
	return c.JSON(dto.AssignmentConflictResponse{
		ProductHasOtherLocations: conflict.ProductHasOtherLocations,
		LocationHasOtherProducts: conflict.LocationHasOtherProducts,
		ConflictingProduct:       conflict.ConflictingProduct,
	})
}

// Unassign godoc
// @Summary      Quitar una asignación puntual
// @Tags         assignments
// @Security     Bearer
// @Produce      json
// @Param        item_id      query  string  true  "producto"
// @Param        location_id  query  string  true  "ubicación"
// @Success      204
// @Router       /api/assignments [delete]
func (h *AssignmentHandler) Unassign(c *fiber.Ctx) error {
	if err := h.uc.Unassign(c.Query("item_id"), c.Query("location_id"), GetUserID(c)); err != nil {
		return assignmentError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UnassignByProduct godoc
// @Summary      Quitar todas las ubicaciones de un producto
// @Tags         assignments
// @Security     Bearer
// @Produce      json
// @Param        item_id  path  string  true  "producto"
// @Success      200  {object}  map[string]int64
// @Router       /api/assignments/by-product/{item_id} [delete]
func (h *AssignmentHandler) UnassignByProduct(c *fiber.Ctx) error {
	n, err := h.uc.UnassignAllByProduct(c.Params("item_id"), GetUserID(c))
	if err != nil {
		return assignmentError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": n})
}

// UnassignByLocation godoc
// @Summary      Quitar todos los productos de una ubicación
// @Tags         assignments
// @Security     Bearer
// @Produce      json
// @Param        location_id  path  string  true  "ubicación"
// @Success      200  {object}  map[string]int64
// @Router       /api/assignments/by-location/{location_id} [delete]
func (h *AssignmentHandler) UnassignByLocation(c *fiber.Ctx) error {
	n, err := h.uc.UnassignAllByLocation(c.Params("location_id"), GetUserID(c))
	if err != nil {
		return assignmentError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": n})
}

// ListByItem godoc
// @Summary      Ubicaciones de un producto
// @Tags         assignments
// @Security     Bearer
// @Produce      json
// @Param        item_id  path  string  true  "producto"
// @Success      200  {array}  dto.ItemLocationResponse
// @Router       /api/assignments/by-product/{item_id} [get]
func (h *AssignmentHandler) ListByItem(c *fiber.Ctx) error {
	rows, err := h.uc.ListByItem(c.Params("item_id"))
	if err != nil {
		return assignmentError(c, err)
	}
	out := make([]dto.ItemLocationResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toItemLocationResponse(row))
	}
	return c.JSON(out)
}

// Transfer godoc
// @Summary      Mover cantidad entre ubicaciones (modo avanzado)
// @Description  from_location_id nulo = entrada externa; to_location_id nulo
// @Description  = salida. Requiere el flag enablePhysicalInventoryTracking.
// @Tags         assignments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "item_id, quantity, from/to"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/assignments/transfer [post]
func (h *AssignmentHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.uc.Transfer(c.Context(), assignment.TransferInput{
		ItemID:         in.ItemID,
		Quantity:       in.Quantity,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		UserID:         GetUserID(c),
		Notes:          in.Notes,
	})
	if err != nil {
		return assignmentError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "movimiento registrado"})
}

// MovementHistory godoc
// @Summary      Historial de movimientos de un producto
// @Tags         assignments
// @Security     Bearer
// @Produce      json
// @Param        item_id  path   string  true   "producto"
// @Param        limit    query  int     false  "máx. filas"
// @Param        offset   query  int     false  "desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/assignments/by-product/{item_id}/movements [get]
func (h *AssignmentHandler) MovementHistory(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	movements, err := h.uc.MovementHistory(c.Params("item_id"), page.Limit, page.Offset)
	if err != nil {
		return assignmentError(c, err)
	}
	out := dto.MovementListResponse{
		Items: make([]dto.MovementResponse, 0, len(movements)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, m := range movements {
		out.Items = append(out.Items, dto.MovementResponse{
			ID:             m.ID,
			ItemID:         m.ItemID,
			Quantity:       m.Quantity,
			FromLocationID: m.FromLocationID,
			ToLocationID:   m.ToLocationID,
			Timestamp:      m.Timestamp,
			UserID:         m.UserID,
			Notes:          m.Notes,
		})
	}
	return c.JSON(out)
}

func assignmentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func toItemLocationResponse(il *entity.ItemLocation) dto.ItemLocationResponse {
	return dto.ItemLocationResponse{
		ID:                  il.ID,
		ItemID:              il.ItemID,
		LocationID:          il.LocationID,
		ClientID:            il.ClientID,
		IsExclusive:         il.IsExclusive,
		RequiresCertificate: il.RequiresCertificate,
		UpdatedBy:           il.UpdatedBy,
		UpdatedAt:           il.UpdatedAt,
	}
}
