package repository

import (
	"time"

	"github.com/tu-usuario/railparts-api/internal/domain/entity"
)

// ScheduleRepository puerto de persistencia para eventos de agenda.
type ScheduleRepository interface {
	Create(event *entity.ScheduleEvent) error
	GetByID(id string) (*entity.ScheduleEvent, error)
	Update(event *entity.ScheduleEvent) error
	Delete(id string) error
	// ListVisible devuelve eventos compartidos más los propios del usuario
	// dentro de la ventana [from, to).
	ListVisible(userID string, from, to time.Time) ([]*entity.ScheduleEvent, error)
}
