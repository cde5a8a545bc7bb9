package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/locations"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/hierarchy"
)

// LocationHandler maneja las peticiones HTTP del árbol de ubicaciones.
type LocationHandler struct {
	uc *locations.LocationUseCase
}

// NewLocationHandler construye el handler.
func NewLocationHandler(uc *locations.LocationUseCase) *LocationHandler {
	return &LocationHandler{uc: uc}
}

// Create godoc
// @Summary      Crear ubicación
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLocationRequest  true  "name, code, type, parent_id"
// @Success      201   {object}  dto.LocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/locations [post]
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	loc, err := h.uc.Add(locations.AddInput{
		Name:     in.Name,
		Code:     in.Code,
		Type:     in.Type,
		ParentID: in.ParentID,
	})
	if err != nil {
		return locationError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toLocationResponse(loc))
}

// Update godoc
// @Summary      Editar ubicación (rename / reparent)
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la ubicación"
// @Param        body  body  dto.UpdateLocationRequest  true  "name, code, type, parent_id"
// @Success      200   {object}  dto.LocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [put]
func (h *LocationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	loc, err := h.uc.Update(locations.UpdateInput{
		ID:       c.Params("id"),
		Name:     in.Name,
		Code:     in.Code,
		Type:     in.Type,
		ParentID: in.ParentID,
	})
	if err != nil {
		return locationError(c, err)
	}
	return c.JSON(toLocationResponse(loc))
}

// Delete godoc
// @Summary      Eliminar ubicación
// @Description  Rechaza con 409 si la ubicación tiene hijos, unidades en el
// @Description  ledger o asignaciones de producto.
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la ubicación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [delete]
func (h *LocationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id"), GetUserID(c)); err != nil {
		return locationError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateBulk godoc
// @Summary      Crear ubicaciones por patrón (rack o clone)
// @Description  Todo-o-nada: o se crea el lote completo o nada.
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkLocationsRequest  true  "pattern, parent_id y parámetros del patrón"
// @Success      201   {object}  dto.LocationListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/locations/bulk [post]
func (h *LocationHandler) CreateBulk(c *fiber.Ctx) error {
	var in dto.BulkLocationsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	created, err := h.uc.AddBulk(c.Context(), locations.BulkInput{
		Pattern:  in.Pattern,
		ParentID: in.ParentID,
		Rack: hierarchy.RackParams{
			Rows:       in.Rows,
			Columns:    in.Columns,
			Levels:     in.Levels,
			CodePrefix: in.CodePrefix,
			CellType:   in.CellType,
		},
		Clone: hierarchy.CloneParams{
			SourceRootID: in.SourceRootID,
			CodeSuffix:   in.CodeSuffix,
		},
	})
	if err != nil {
		return locationError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toLocationListResponse(created))
}

// Selectable godoc
// @Summary      Ubicaciones hoja (asignables)
// @Description  Solo las hojas aceptan inventario; los nodos intermedios son
// @Description  agrupadores.
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LocationListResponse
// @Router       /api/locations/selectable [get]
func (h *LocationHandler) Selectable(c *fiber.Ctx) error {
	leaves, err := h.uc.Selectable()
	if err != nil {
		return locationError(c, err)
	}
	return c.JSON(toLocationListResponse(leaves))
}

// Children godoc
// @Summary      Hijos directos de los padres dados
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        parent_ids  query  string  false  "IDs de padres separados por coma; vacío = raíces"
// @Success      200  {object}  dto.LocationListResponse
// @Router       /api/locations/children [get]
func (h *LocationHandler) Children(c *fiber.Ctx) error {
	var parentIDs []string
	if raw := c.Query("parent_ids"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				parentIDs = append(parentIDs, id)
			}
		}
	}
	children, err := h.uc.Children(parentIDs)
	if err != nil {
		return locationError(c, err)
	}
	return c.JSON(toLocationListResponse(children))
}

// Path godoc
// @Summary      Camino legible raíz→nodo
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la ubicación"
// @Success      200  {object}  dto.LocationPathResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/{id}/path [get]
func (h *LocationHandler) Path(c *fiber.Ctx) error {
	id := c.Params("id")
	path, err := h.uc.RenderPath(id)
	if err != nil {
		return locationError(c, err)
	}
	return c.JSON(dto.LocationPathResponse{ID: id, Path: path})
}

// Search godoc
// @Summary      Buscar ubicaciones por camino
// @Description  Insensible a mayúsculas y acentos.
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "subcadena del camino"
// @Success      200  {object}  dto.LocationSearchResponse
// @Router       /api/locations/search [get]
func (h *LocationHandler) Search(c *fiber.Ctx) error {
	results, err := h.uc.Search(c.Query("q"))
	if err != nil {
		return locationError(c, err)
	}
	out := dto.LocationSearchResponse{Items: make([]dto.LocationSearchItem, 0, len(results))}
	for _, r := range results {
		out.Items = append(out.Items, dto.LocationSearchItem{
			Location: toLocationResponse(r.Location),
			Path:     r.Path,
		})
	}
	return c.JSON(out)
}

// GetLevels godoc
// @Summary      Taxonomía de niveles configurada
// @Tags         config
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LocationLevelDTO
// @Router       /api/config/location-levels [get]
func (h *LocationHandler) GetLevels(c *fiber.Ctx) error {
	levels, err := h.uc.Levels()
	if err != nil {
		return locationError(c, err)
	}
	out := make([]dto.LocationLevelDTO, 0, len(levels))
	for _, lv := range levels {
		out = append(out, dto.LocationLevelDTO{Type: lv.Type, Name: lv.Name})
	}
	return c.JSON(out)
}

// SaveLevels godoc
// @Summary      Guardar la taxonomía de niveles
// @Tags         config
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LocationLevelsRequest  true  "niveles en orden jerárquico"
// @Success      200   {array}   dto.LocationLevelDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/config/location-levels [put]
func (h *LocationHandler) SaveLevels(c *fiber.Ctx) error {
	var in dto.LocationLevelsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	levels := make([]entity.LocationLevel, 0, len(in.Levels))
	for _, lv := range in.Levels {
		levels = append(levels, entity.LocationLevel{Type: lv.Type, Name: lv.Name})
	}
	if err := h.uc.SaveLevels(levels); err != nil {
		return locationError(c, err)
	}
	return c.JSON(in.Levels)
}

func locationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ubicación no encontrada"})
	case errors.Is(err, domain.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidHierarchy):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_HIERARCHY", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func toLocationResponse(loc *entity.Location) dto.LocationResponse {
	return dto.LocationResponse{
		ID:        loc.ID,
		Name:      loc.Name,
		Code:      loc.Code,
		Type:      loc.Type,
		ParentID:  loc.ParentID,
		IsLocked:  loc.IsLocked,
		LockedBy:  loc.LockedBy,
		CreatedAt: loc.CreatedAt,
		UpdatedAt: loc.UpdatedAt,
	}
}

func toLocationListResponse(locs []*entity.Location) dto.LocationListResponse {
	out := dto.LocationListResponse{Items: make([]dto.LocationResponse, 0, len(locs))}
	for _, loc := range locs {
		out.Items = append(out.Items, toLocationResponse(loc))
	}
	return out
}
