package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/railparts-api/internal/domain/ledger"
)

// Estados administrativos de un artículo. Los estados de stock (normal,
// low_stock, out_of_stock) se derivan con ledger.StatusFor; discontinued es el
// único que se fija a mano y excluye al artículo de movimientos y cierres.
const (
	ItemStatusDiscontinued = "discontinued"
)

// Item representa un artículo del almacén de partes eléctricas con sus
// contadores de libro desde el último cierre. CurrentQuantity es derivada
// (se persiste materializada para consultas) y solo se calcula vía ledger.
type Item struct {
	ID              string
	Code            string // código de parte, único
	Name            string
	Specification   string
	Location        string // estantería/posición en el almacén
	Unit            string // EA, m, kg...
	UnitPrice       decimal.Decimal
	MinStock        int64
	ClosingQuantity int64
	StockIn         int64
	StockOut        int64
	CurrentQuantity int64
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Counters devuelve los contadores del artículo para operar con el paquete ledger.
func (i *Item) Counters() ledger.Counters {
	return ledger.Counters{Closing: i.ClosingQuantity, StockIn: i.StockIn, StockOut: i.StockOut}
}

// SetCounters vuelca contadores ya validados y rederiva cantidad actual y estado.
// Un artículo discontinuado conserva su estado administrativo.
func (i *Item) SetCounters(c ledger.Counters) {
	i.ClosingQuantity = c.Closing
	i.StockIn = c.StockIn
	i.StockOut = c.StockOut
	i.CurrentQuantity = ledger.Current(c)
	if i.Status != ItemStatusDiscontinued {
		i.Status = ledger.StatusFor(i.CurrentQuantity, i.MinStock)
	}
}
