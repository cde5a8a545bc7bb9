package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/locks"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// LockHandler maneja los candados consultivos de sesión sobre ubicaciones.
type LockHandler struct {
	uc *locks.LockUseCase
}

// NewLockHandler construye el handler.
func NewLockHandler(uc *locks.LockUseCase) *LockHandler {
	return &LockHandler{uc: uc}
}

// Lock godoc
// @Summary      Reclamar candados (todo-o-nada)
// @Description  Si alguna ubicación ya está tomada por otra sesión no se
// @Description  reclama ninguna y responde locked=false.
// @Tags         locks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LockRequest  true  "entity_ids, session_id"
// @Success      200   {object}  dto.LockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/locks [post]
func (h *LockHandler) Lock(c *fiber.Ctx) error {
	var in dto.LockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.EntityIDs) == 0 || in.SessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "entity_ids y session_id son requeridos"})
	}
	locked, err := h.uc.Lock(c.Context(), in.EntityIDs, GetUserName(c), in.SessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "alguna ubicación no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.LockResponse{Locked: locked})
}

// Release godoc
// @Summary      Liberar candados propios
// @Description  Idempotente: liberar lo no tomado no es error.
// @Tags         locks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReleaseLockRequest  true  "entity_ids"
// @Success      204
// @Router       /api/locks/release [post]
func (h *LockHandler) Release(c *fiber.Ctx) error {
	var in dto.ReleaseLockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Release(c.Context(), in.EntityIDs, GetUserName(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ForceRelease godoc
// @Summary      Liberar un candado ajeno (solo admin)
// @Description  Recuperación de candados huérfanos de sesiones muertas.
// @Tags         locks
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la ubicación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locks/{id}/force-release [post]
func (h *LockHandler) ForceRelease(c *fiber.Ctx) error {
	if err := h.uc.ForceRelease(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ubicación no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ActiveLocks godoc
// @Summary      Candados activos
// @Description  Tablero para detectar candados atascados.
// @Tags         locks
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ActiveLocksResponse
// @Router       /api/locks [get]
func (h *LockHandler) ActiveLocks(c *fiber.Ctx) error {
	locked, err := h.uc.ActiveLocks()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := dto.ActiveLocksResponse{Items: make([]dto.ActiveLockResponse, 0, len(locked))}
	for _, loc := range locked {
		out.Items = append(out.Items, dto.ActiveLockResponse{
			LocationID: loc.ID,
			Code:       loc.Code,
			Name:       loc.Name,
			LockedBy:   loc.LockedBy,
			SessionID:  loc.LockedBySessionID,
		})
	}
	return c.JSON(out)
}
