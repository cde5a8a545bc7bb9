package dto

// LockRequest entrada para reclamar candados (todo-o-nada).
type LockRequest struct {
	EntityIDs []string `json:"entity_ids" validate:"required,min=1"`
	SessionID string   `json:"session_id" validate:"required"`
}

// LockResponse resultado del reclamo.
type LockResponse struct {
	Locked bool `json:"locked"`
}

// ReleaseLockRequest entrada para liberar candados propios (idempotente).
type ReleaseLockRequest struct {
	EntityIDs []string `json:"entity_ids" validate:"required,min=1"`
}

// ActiveLockResponse una ubicación con candado tomado.
type ActiveLockResponse struct {
	LocationID string `json:"location_id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	LockedBy   string `json:"locked_by"`
	SessionID  string `json:"session_id"`
}

// ActiveLocksResponse tablero de candados activos.
type ActiveLocksResponse struct {
	Items []ActiveLockResponse `json:"items"`
}
