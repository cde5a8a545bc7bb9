package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleOperario  = "operario"
)

// User representa un usuario del sistema. Aporta el actor (id + nombre)
// para los sellos de auditoría del ledger y de los candados.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, bodeguero, operario
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
