package dto

import "time"

// CreateProductRequest entrada para registrar un producto del catálogo.
type CreateProductRequest struct {
	SKU         string `json:"sku" validate:"required,min=1,max=50"`
	Description string `json:"description" validate:"required,min=1,max=500"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string    `json:"id"`
	SKU         string    `json:"sku"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductListResponse catálogo paginado.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
