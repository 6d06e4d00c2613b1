package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement representa un movimiento de stock sobre un artículo. El historial es
// append-only: las correcciones se hacen con un movimiento compensatorio o con
// el reverso administrativo (que elimina la fila y deshace su efecto exacto).
type Movement struct {
	ID               string
	IdempotencyKey   string // UUID generado por el cliente; único, evita doble aplicación en reintentos
	ItemID           string
	Type             string // IN, OUT, ADJUSTMENT, DISPOSAL
	Quantity         int64  // positiva; ADJUSTMENT lleva signo
	UnitPrice        decimal.Decimal
	PreviousQuantity int64 // saldo antes de aplicar, capturado al escribir
	NewQuantity      int64 // saldo después de aplicar, capturado al escribir
	Reason           string
	CreatedBy        string // UserID
	CreatedAt        time.Time
}
