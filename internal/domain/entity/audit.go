package entity

import "time"

// Acciones auditadas.
const (
	AuditMovementReverse = "movement.reverse"
	AuditClosingCommit   = "closing.commit"
	AuditUserCreate      = "user.create"
	AuditUserUpdate      = "user.update"
	AuditUserDisable     = "user.disable"
	AuditItemRebuild     = "item.rebuild"
)

// AuditEntry es una entrada inmutable del registro de auditoría.
type AuditEntry struct {
	ID        string
	Actor     string // UserID que ejecutó la acción
	Action    string
	Resource  string // id del recurso afectado
	Detail    string // texto libre con el contexto de la acción
	CreatedAt time.Time
}
