package repository

import (
	"time"

	"github.com/tu-usuario/railparts-api/internal/domain/entity"
)

// DiaryRepository puerto de persistencia para diarios de trabajo.
type DiaryRepository interface {
	Create(diary *entity.WorkDiary) error
	GetByID(id string) (*entity.WorkDiary, error)
	Update(diary *entity.WorkDiary) error
	Delete(id string) error
	// List filtra por autor (vacío = todos) y rango de fechas.
	List(authorID string, from, to *time.Time, limit, offset int) ([]*entity.WorkDiary, error)
}
