package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un informe de comisión de servicio.
const (
	TripStatusDraft     = "draft"
	TripStatusSubmitted = "submitted"
	TripStatusApproved  = "approved"
)

// BusinessTrip representa una comisión/viaje de servicio con su informe y gastos.
type BusinessTrip struct {
	ID          string
	UserID      string
	Destination string
	Purpose     string
	StartDate   time.Time
	EndDate     time.Time
	Expenses    decimal.Decimal
	Report      string // informe de resultados, se completa al volver
	Status      string // draft, submitted, approved
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
