package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"      // administración total, reversos y cierres
	RoleSupervisor = "supervisor" // cierres y gestión de inventario
	RoleTecnico    = "tecnico"    // movimientos, diarios, viajes, agenda
	RoleConsulta   = "consulta"   // solo lectura
)

// Estados de usuario.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario de la división.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, supervisor, tecnico, consulta
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
