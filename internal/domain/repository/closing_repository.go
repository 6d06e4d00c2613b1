package repository

import (
	"time"

	"github.com/tu-usuario/railparts-api/internal/domain/entity"
)

// ClosingRepository puerto de persistencia para snapshots de cierre.
type ClosingRepository interface {
	CreateSnapshot(snapshot *entity.ClosingSnapshot) error
	// ExistsForDate indica si ya hay un cierre registrado para la fecha.
	ExistsForDate(date time.Time) (bool, error)
	// LatestDate devuelve la última fecha cerrada, o nil si nunca se cerró.
	LatestDate() (*time.Time, error)
	// LatestCommitTime devuelve el instante en que se registró el último cierre,
	// o nil si nunca se cerró. Marca la frontera de lo plegado en closing_quantity.
	LatestCommitTime() (*time.Time, error)
	ListByDate(date time.Time) ([]*entity.ClosingSnapshot, error)
	ListDates(limit, offset int) ([]time.Time, error)
}
