package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados terminales del proceso de cierre.
const (
	ClosingStatusClosed = "CLOSED"
	ClosingStatusFailed = "FAILED"
)

// ClosingSnapshot es la foto de un artículo en una fecha de cierre: copia los
// datos descriptivos y congela la cantidad y el importe valorizado. Se crea
// únicamente desde el proceso de cierre, un lote por fecha.
type ClosingSnapshot struct {
	ID              string
	ClosingDate     time.Time // solo fecha (00:00 local)
	ItemID          string
	ItemCode        string
	ItemName        string
	Specification   string
	Location        string
	ClosingQuantity int64
	UnitPrice       decimal.Decimal
	TotalAmount     decimal.Decimal // ClosingQuantity * UnitPrice
	ClosedBy        string          // UserID que ejecutó el cierre
	CreatedAt       time.Time
}
