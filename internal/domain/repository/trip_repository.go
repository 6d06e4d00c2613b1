package repository

import "github.com/tu-usuario/railparts-api/internal/domain/entity"

// TripRepository puerto de persistencia para comisiones de servicio.
type TripRepository interface {
	Create(trip *entity.BusinessTrip) error
	GetByID(id string) (*entity.BusinessTrip, error)
	Update(trip *entity.BusinessTrip) error
	// List filtra por usuario (vacío = todos) y/o estado (vacío = todos).
	List(userID, status string, limit, offset int) ([]*entity.BusinessTrip, error)
}
