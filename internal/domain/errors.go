package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	// ErrValidation entrada inválida: código duplicado, padre inexistente,
	// intento de ciclo, cantidad <= 0. Nunca se reintenta automáticamente.
	ErrValidation = errors.New("entrada inválida")

	// ErrConflict el estado actual impide la operación: ubicación con hijos
	// o con referencias del ledger, candado tomado por otra sesión.
	ErrConflict = errors.New("conflicto con el estado actual")

	// ErrInvalidState transición de ciclo de vida ilegal sobre una unidad
	// de inventario (aplicar/corregir en el estado equivocado).
	ErrInvalidState = errors.New("estado inválido para la operación")

	// ErrInvalidHierarchy el guardián de ciclos se disparó recorriendo la
	// jerarquía: datos corruptos. Se loguea en ERROR y se propaga.
	ErrInvalidHierarchy = errors.New("jerarquía de ubicaciones inválida")
)
