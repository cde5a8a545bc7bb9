package dto

import "time"

// CreateLocationRequest entrada para crear una ubicación.
type CreateLocationRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=200"`
	Code     string  `json:"code" validate:"required,min=1,max=50"`
	Type     string  `json:"type" validate:"required"`
	ParentID *string `json:"parent_id"`
}

// UpdateLocationRequest entrada para editar una ubicación (rename/reparent).
type UpdateLocationRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=200"`
	Code     string  `json:"code" validate:"required,min=1,max=50"`
	Type     string  `json:"type" validate:"required"`
	ParentID *string `json:"parent_id"`
}

// BulkLocationsRequest entrada de creación masiva por patrón.
type BulkLocationsRequest struct {
	Pattern  string `json:"pattern" validate:"required,oneof=rack clone"`
	ParentID string `json:"parent_id" validate:"required"`

	// Parámetros del patrón rack.
	Rows       int    `json:"rows"`
	Columns    int    `json:"columns"`
	Levels     int    `json:"levels"`
	CodePrefix string `json:"code_prefix"`
	CellType   string `json:"cell_type"`

	// Parámetros del patrón clone.
	SourceRootID string `json:"source_root_id"`
	CodeSuffix   string `json:"code_suffix"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Type      string    `json:"type"`
	ParentID  *string   `json:"parent_id,omitempty"`
	IsLocked  bool      `json:"is_locked"`
	LockedBy  string    `json:"locked_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LocationListResponse lista de ubicaciones.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
}

// LocationPathResponse camino legible raíz→nodo.
type LocationPathResponse struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}

// LocationSearchResponse resultado de búsqueda con camino.
type LocationSearchResponse struct {
	Items []LocationSearchItem `json:"items"`
}

// LocationSearchItem una ubicación encontrada.
type LocationSearchItem struct {
	Location LocationResponse `json:"location"`
	Path     string           `json:"path"`
}

// LocationLevelsRequest taxonomía de niveles a guardar.
type LocationLevelsRequest struct {
	Levels []LocationLevelDTO `json:"levels" validate:"required,min=1"`
}

// LocationLevelDTO un nivel de la taxonomía.
type LocationLevelDTO struct {
	Type string `json:"type" validate:"required"`
	Name string `json:"name" validate:"required"`
}
