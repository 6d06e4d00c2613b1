// Package auth define la verificación de permisos del lado del servidor.
// Toda decisión de acceso pasa por Can(actor, acción, recurso); los handlers
// nunca deciden por su cuenta a partir de estado de sesión del cliente.
package auth

import "github.com/tu-usuario/railparts-api/internal/domain/entity"

// Acciones sobre las que se decide acceso.
const (
	ActionItemRead        = "item.read"
	ActionItemWrite       = "item.write"
	ActionMovementRead    = "movement.read"
	ActionMovementApply   = "movement.apply"
	ActionMovementReverse = "movement.reverse"
	ActionClosingRead     = "closing.read"
	ActionClosingCommit   = "closing.commit"
	ActionUserManage      = "user.manage"
	ActionAuditRead       = "audit.read"
	ActionDiaryRead       = "diary.read"
	ActionDiaryWrite      = "diary.write"
	ActionTripRead        = "trip.read"
	ActionTripWrite       = "trip.write"
	ActionTripApprove     = "trip.approve"
	ActionScheduleRead    = "schedule.read"
	ActionScheduleWrite   = "schedule.write"
	ActionProjectRead     = "project.read"
	ActionProjectWrite    = "project.write"
)

// Actor identifica a quien ejecuta una acción (extraído del JWT).
type Actor struct {
	UserID string
	Role   string
}

// grants acciones permitidas por rol sin importar el dueño del recurso.
// admin no aparece: tiene todo por definición.
var grants = map[string]map[string]bool{
	entity.RoleSupervisor: setOf(
		ActionItemRead, ActionItemWrite,
		ActionMovementRead, ActionMovementApply,
		ActionClosingRead, ActionClosingCommit,
		ActionDiaryRead, ActionDiaryWrite,
		ActionTripRead, ActionTripWrite, ActionTripApprove,
		ActionScheduleRead, ActionScheduleWrite,
		ActionProjectRead, ActionProjectWrite,
	),
	entity.RoleTecnico: setOf(
		ActionItemRead,
		ActionMovementRead, ActionMovementApply,
		ActionClosingRead,
		ActionDiaryRead,
		ActionTripRead,
		ActionScheduleRead,
		ActionProjectRead,
	),
	entity.RoleConsulta: setOf(
		ActionItemRead,
		ActionMovementRead,
		ActionClosingRead,
		ActionDiaryRead,
		ActionTripRead,
		ActionScheduleRead,
		ActionProjectRead,
	),
}

// ownGrants acciones que un técnico puede ejecutar sobre recursos propios
// (sus diarios, sus informes de viaje, su agenda).
var ownGrants = map[string]map[string]bool{
	entity.RoleTecnico: setOf(
		ActionDiaryWrite, ActionTripWrite, ActionScheduleWrite,
	),
}

// Can decide si el actor puede ejecutar la acción. ownerID es el dueño del
// recurso afectado (vacío cuando la acción no recae sobre un recurso con dueño).
func Can(a Actor, action, ownerID string) bool {
	if a.Role == entity.RoleAdmin {
		return true
	}
	if grants[a.Role][action] {
		return true
	}
	if ownerID != "" && ownerID == a.UserID && ownGrants[a.Role][action] {
		return true
	}
	return false
}

func setOf(actions ...string) map[string]bool {
	m := make(map[string]bool, len(actions))
	for _, a := range actions {
		m[a] = true
	}
	return m
}
