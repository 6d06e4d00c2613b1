package inventory

import (
	"context"

	"github.com/tu-usuario/railparts-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el bloqueo de fila del artículo,
// la actualización de contadores, la fila de historial y la auditoría se
// confirmen o reviertan como una sola unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		auditRepo repository.AuditRepository,
	) error) error
}
