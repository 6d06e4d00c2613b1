package dto

import "time"

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,min=4"`
}

// LoginResponse token emitido más el usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse representación HTTP de un usuario (nunca incluye el hash).
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateUserRequest body para POST /api/users (solo admin).
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,max=100"`
	Role     string `json:"role" validate:"required,oneof=admin supervisor tecnico consulta"`
}

// UpdateUserRequest body para PUT /api/users/:id. Campos nil no se tocan.
type UpdateUserRequest struct {
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"`
	Name     *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=admin supervisor tecnico consulta"`
	Status   *string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

// UserListResponse listado paginado de usuarios.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Page  PageResponse   `json:"page"`
}

// AuditEntryResponse entrada del registro de auditoría.
type AuditEntryResponse struct {
	ID        string    `json:"id"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Resource  string    `json:"resource"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

// AuditListResponse listado paginado de auditoría.
type AuditListResponse struct {
	Entries []AuditEntryResponse `json:"entries"`
	Page    PageResponse         `json:"page"`
}
