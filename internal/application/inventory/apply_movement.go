package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/railparts-api/internal/application/dto"
	"github.com/tu-usuario/railparts-api/internal/domain"
	"github.com/tu-usuario/railparts-api/internal/domain/entity"
	"github.com/tu-usuario/railparts-api/internal/domain/ledger"
	"github.com/tu-usuario/railparts-api/internal/domain/repository"
)

// ApplyMovementUseCase aplica movimientos de stock (IN, OUT, ADJUSTMENT,
// DISPOSAL) de forma transaccional con bloqueo de fila (SELECT FOR UPDATE).
// El bloqueo serializa los movimientos concurrentes sobre el mismo artículo:
// dos salidas simultáneas nunca pueden dejar el saldo en negativo.
type ApplyMovementUseCase struct {
	txRunner TxRunner
	movRepo  repository.MovementRepository // lecturas de idempotencia fuera de la tx
}

// NewApplyMovementUseCase construye el caso de uso.
func NewApplyMovementUseCase(txRunner TxRunner, movRepo repository.MovementRepository) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{txRunner: txRunner, movRepo: movRepo}
}

// MovementInput entrada para aplicar un movimiento.
// Quantity es positiva; para ADJUSTMENT lleva signo. UnitPrice nil toma el
// precio vigente del artículo.
type MovementInput struct {
	IdempotencyKey string
	ItemID         string
	Type           string
	Quantity       int64
	UnitPrice      *decimal.Decimal
	Actor          string
	Reason         string
}

// Apply valida la entrada, abre una transacción, bloquea la fila del artículo,
// aplica la aritmética del ledger y persiste contadores + fila de historial.
//
// Idempotencia: si la clave ya está registrada (reintento del cliente) se
// devuelve el movimiento existente con Duplicate=true, sin aplicar nada.
func (uc *ApplyMovementUseCase) Apply(ctx context.Context, input MovementInput) (*dto.ApplyMovementResponse, error) {
	if input.IdempotencyKey == "" || input.ItemID == "" || !ledger.ValidType(input.Type) {
		return nil, domain.ErrInvalidInput
	}
	if input.UnitPrice != nil && input.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	// Camino rápido de reintento: la clave ya existe, no se vuelve a aplicar.
	if existing, err := uc.movRepo.GetByIdempotencyKey(input.IdempotencyKey); err != nil {
		return nil, err
	} else if existing != nil {
		return duplicateResponse(existing), nil
	}

	now := time.Now()
	var result *dto.ApplyMovementResponse

	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		_ repository.AuditRepository,
	) error {
		// Bloquea la fila del artículo: a partir de aquí este movimiento es el
		// único escritor de sus contadores hasta el commit.
		item, err := itemRepo.GetForUpdate(input.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if item.Status == entity.ItemStatusDiscontinued {
			return domain.ErrConflict
		}

		previous := item.CurrentQuantity
		counters, err := ledger.Apply(item.Counters(), input.Type, input.Quantity)
		if err != nil {
			return err
		}
		item.SetCounters(counters)
		item.UpdatedAt = now
		if err := itemRepo.UpdateCounters(item); err != nil {
			return err
		}

		unitPrice := item.UnitPrice
		if input.UnitPrice != nil {
			unitPrice = *input.UnitPrice
		}
		mov := &entity.Movement{
			ID:               uuid.New().String(),
			IdempotencyKey:   input.IdempotencyKey,
			ItemID:           item.ID,
			Type:             input.Type,
			Quantity:         input.Quantity,
			UnitPrice:        unitPrice,
			PreviousQuantity: previous,
			NewQuantity:      item.CurrentQuantity,
			Reason:           input.Reason,
			CreatedBy:        input.Actor,
			CreatedAt:        now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		result = &dto.ApplyMovementResponse{MovementID: mov.ID, NewQuantity: mov.NewQuantity}
		return nil
	})
	if err != nil {
		// Carrera entre dos reintentos con la misma clave: el índice único la
		// resuelve; devolvemos el movimiento que ganó.
		if errors.Is(err, domain.ErrDuplicate) {
			existing, lookupErr := uc.movRepo.GetByIdempotencyKey(input.IdempotencyKey)
			if lookupErr == nil && existing != nil {
				return duplicateResponse(existing), nil
			}
		}
		return nil, err
	}
	return result, nil
}

func duplicateResponse(m *entity.Movement) *dto.ApplyMovementResponse {
	return &dto.ApplyMovementResponse{MovementID: m.ID, NewQuantity: m.NewQuantity, Duplicate: true}
}
