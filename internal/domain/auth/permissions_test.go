package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/railparts-api/internal/domain/entity"
)

func TestCan_AdminTodo(t *testing.T) {
	admin := Actor{UserID: "u1", Role: entity.RoleAdmin}
	assert.True(t, Can(admin, ActionMovementReverse, ""))
	assert.True(t, Can(admin, ActionUserManage, ""))
	assert.True(t, Can(admin, ActionAuditRead, ""))
}

func TestCan_SupervisorCierraPeroNoRevierte(t *testing.T) {
	sup := Actor{UserID: "u2", Role: entity.RoleSupervisor}
	assert.True(t, Can(sup, ActionClosingCommit, ""))
	assert.False(t, Can(sup, ActionMovementReverse, ""), "el reverso de historial es solo de admin")
	assert.False(t, Can(sup, ActionUserManage, ""))
}

func TestCan_TecnicoRecursosPropios(t *testing.T) {
	tec := Actor{UserID: "u3", Role: entity.RoleTecnico}
	assert.True(t, Can(tec, ActionMovementApply, ""))
	assert.True(t, Can(tec, ActionDiaryWrite, "u3"), "puede editar su propio diario")
	assert.False(t, Can(tec, ActionDiaryWrite, "u9"), "no puede editar diarios ajenos")
	assert.False(t, Can(tec, ActionClosingCommit, ""))
}

func TestCan_ConsultaSoloLectura(t *testing.T) {
	ro := Actor{UserID: "u4", Role: entity.RoleConsulta}
	assert.True(t, Can(ro, ActionItemRead, ""))
	assert.False(t, Can(ro, ActionMovementApply, ""))
	assert.False(t, Can(ro, ActionDiaryWrite, "u4"), "consulta no escribe ni sobre lo propio")
}

func TestCan_RolDesconocido(t *testing.T) {
	assert.False(t, Can(Actor{UserID: "u5", Role: "externo"}, ActionItemRead, ""))
}
