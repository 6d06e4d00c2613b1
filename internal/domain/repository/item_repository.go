package repository

import "github.com/tu-usuario/railparts-api/internal/domain/entity"

// ItemRepository puerto de persistencia para artículos.
// Las implementaciones deben poder operar sobre pool o sobre transacción.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetByCode(code string) (*entity.Item, error)
	// GetForUpdate obtiene el artículo bloqueando su fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción; serializa los movimientos
	// concurrentes sobre el mismo artículo.
	GetForUpdate(id string) (*entity.Item, error)
	// UpdateCounters persiste contadores, cantidad actual y estado derivado.
	UpdateCounters(item *entity.Item) error
	// Update persiste los datos descriptivos (no toca contadores).
	Update(item *entity.Item) error
	// List busca por término normalizado en código/nombre (vacío = todos).
	List(q string, limit, offset int) ([]*entity.Item, error)
	// ListActive devuelve todos los artículos no discontinuados.
	ListActive() ([]*entity.Item, error)
	// ListActiveForUpdate devuelve todos los artículos no discontinuados con
	// sus filas bloqueadas, para el lote de cierre.
	ListActiveForUpdate() ([]*entity.Item, error)
}
