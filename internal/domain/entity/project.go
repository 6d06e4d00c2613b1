package entity

import "time"

// Estados de proyecto.
const (
	ProjectStatusPlanned  = "planned"
	ProjectStatusActive   = "active"
	ProjectStatusDone     = "done"
	ProjectStatusCanceled = "canceled"
)

// Project representa una obra o proyecto que la división sigue (instalaciones,
// mantenimientos mayores). Los movimientos de stock pueden referenciarlo en Reason.
type Project struct {
	ID          string
	Code        string // código interno, único
	Name        string
	ManagerID   string
	StartDate   time.Time
	EndDate     *time.Time // nil mientras el proyecto siga abierto
	Status      string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
