// Package ledger contiene la aritmética canónica del libro de stock por artículo.
//
// La fórmula vive únicamente aquí:
//
//	current_quantity = closing_quantity + stock_in - stock_out
//
// Todos los demás componentes (casos de uso, repositorios, recheck) derivan la
// cantidad actual llamando a Current; nunca la recalculan por su cuenta.
package ledger

import "github.com/tu-usuario/railparts-api/internal/domain"

// Tipos de movimiento de stock.
const (
	MovementTypeIN         = "IN"         // recepción
	MovementTypeOUT        = "OUT"        // salida
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste administrativo con signo
	MovementTypeDISPOSAL   = "DISPOSAL"   // baja/desecho
)

// Estados derivados de un artículo según su cantidad actual y stock mínimo.
const (
	StatusNormal     = "normal"
	StatusLowStock   = "low_stock"
	StatusOutOfStock = "out_of_stock"
)

// Counters son los tres contadores persistidos de un artículo desde el último cierre.
type Counters struct {
	Closing  int64 // base del último cierre
	StockIn  int64 // entradas acumuladas desde el cierre
	StockOut int64 // salidas/bajas acumuladas desde el cierre
}

// Current devuelve la cantidad actual derivada de los contadores.
func Current(c Counters) int64 {
	return c.Closing + c.StockIn - c.StockOut
}

// ValidType indica si el tipo de movimiento es uno de los cuatro soportados.
func ValidType(movType string) bool {
	switch movType {
	case MovementTypeIN, MovementTypeOUT, MovementTypeADJUSTMENT, MovementTypeDISPOSAL:
		return true
	}
	return false
}

// Apply aplica un movimiento sobre los contadores y devuelve los contadores resultantes.
//
//   - IN: qty > 0, suma a StockIn.
//   - OUT / DISPOSAL: qty > 0; rechaza con ErrInsufficientStock si qty excede la
//     cantidad actual (la resta pendiente nunca deja el saldo negativo).
//   - ADJUSTMENT: qty con signo; positivo suma a StockIn, negativo suma |qty| a
//     StockOut con el mismo tope que una salida.
//
// Los contadores de entrada no se modifican; en caso de error se devuelven tal cual.
func Apply(c Counters, movType string, qty int64) (Counters, error) {
	switch movType {
	case MovementTypeIN:
		if qty <= 0 {
			return c, domain.ErrInvalidQuantity
		}
		c.StockIn += qty
		return c, nil
	case MovementTypeOUT, MovementTypeDISPOSAL:
		if qty <= 0 {
			return c, domain.ErrInvalidQuantity
		}
		if qty > Current(c) {
			return c, domain.ErrInsufficientStock
		}
		c.StockOut += qty
		return c, nil
	case MovementTypeADJUSTMENT:
		if qty == 0 {
			return c, domain.ErrInvalidQuantity
		}
		if qty > 0 {
			c.StockIn += qty
			return c, nil
		}
		if -qty > Current(c) {
			return c, domain.ErrInsufficientStock
		}
		c.StockOut += -qty
		return c, nil
	}
	return c, domain.ErrInvalidInput
}

// Reverse deshace exactamente el efecto de un movimiento ya aplicado: espejo de
// Apply, de modo que Apply seguido de Reverse deja los contadores intactos.
// Rechaza con ErrConflict si el reverso dejaría algún contador o la cantidad
// actual en negativo (el movimiento ya no es reversible en este estado).
func Reverse(c Counters, movType string, qty int64) (Counters, error) {
	switch movType {
	case MovementTypeIN:
		if qty <= 0 {
			return c, domain.ErrInvalidQuantity
		}
		if c.StockIn < qty || Current(c)-qty < 0 {
			return c, domain.ErrConflict
		}
		c.StockIn -= qty
		return c, nil
	case MovementTypeOUT, MovementTypeDISPOSAL:
		if qty <= 0 {
			return c, domain.ErrInvalidQuantity
		}
		if c.StockOut < qty {
			return c, domain.ErrConflict
		}
		c.StockOut -= qty
		return c, nil
	case MovementTypeADJUSTMENT:
		if qty == 0 {
			return c, domain.ErrInvalidQuantity
		}
		if qty > 0 {
			if c.StockIn < qty || Current(c)-qty < 0 {
				return c, domain.ErrConflict
			}
			c.StockIn -= qty
			return c, nil
		}
		if c.StockOut < -qty {
			return c, domain.ErrConflict
		}
		c.StockOut -= -qty
		return c, nil
	}
	return c, domain.ErrInvalidInput
}

// Close pliega la cantidad actual como nueva base y deja los acumulados en cero.
// Es la transición de contadores que ejecuta el proceso de cierre por artículo.
func Close(c Counters) Counters {
	return Counters{Closing: Current(c), StockIn: 0, StockOut: 0}
}

// StatusFor deriva el estado de stock de un artículo. minStock <= 0 desactiva
// la alerta de stock bajo.
func StatusFor(current, minStock int64) string {
	switch {
	case current <= 0:
		return StatusOutOfStock
	case minStock > 0 && current <= minStock:
		return StatusLowStock
	default:
		return StatusNormal
	}
}
