package repository

import (
	"time"

	"github.com/tu-usuario/railparts-api/internal/domain/entity"
)

// MovementSums acumulados de un artículo desde una fecha (para reconstrucción).
type MovementSums struct {
	StockIn  int64
	StockOut int64
}

// MovementRepository puerto de persistencia para el historial de movimientos.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	// GetByIdempotencyKey devuelve el movimiento ya registrado con esa clave, o nil.
	GetByIdempotencyKey(key string) (*entity.Movement, error)
	// List filtra por artículo y rango de fechas; itemID vacío = todos.
	List(itemID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	// Delete elimina una fila del historial (solo el reverso administrativo la usa).
	Delete(id string) error
	// SumSince acumula entradas y salidas de un artículo desde la fecha dada
	// (exclusiva), aplicando la misma convención de signos que el ledger.
	SumSince(itemID string, since time.Time) (MovementSums, error)
}
