package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/railparts-api/internal/application/dto"
	"github.com/tu-usuario/railparts-api/internal/domain"
	"github.com/tu-usuario/railparts-api/internal/domain/entity"
	"github.com/tu-usuario/railparts-api/internal/domain/ledger"
	"github.com/tu-usuario/railparts-api/internal/domain/repository"
)

// ReverseMovementUseCase deshace un movimiento del historial (vía admin).
// El reverso es el espejo exacto de la aplicación: resta lo que sumó y suma lo
// que restó, elimina la fila y deja constancia en auditoría, todo en una tx.
type ReverseMovementUseCase struct {
	txRunner    TxRunner
	closingRepo repository.ClosingRepository
}

// NewReverseMovementUseCase construye el caso de uso.
func NewReverseMovementUseCase(txRunner TxRunner, closingRepo repository.ClosingRepository) *ReverseMovementUseCase {
	return &ReverseMovementUseCase{txRunner: txRunner, closingRepo: closingRepo}
}

// Reverse elimina el movimiento y revierte su efecto sobre los contadores.
// Un movimiento anterior al último cierre ya está plegado en closing_quantity
// y no es reversible (ErrConflict); se corrige con un movimiento compensatorio.
func (uc *ReverseMovementUseCase) Reverse(ctx context.Context, movementID, actor string) (*dto.ApplyMovementResponse, error) {
	if movementID == "" {
		return nil, domain.ErrInvalidInput
	}
	lastClose, err := uc.closingRepo.LatestCommitTime()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var result *dto.ApplyMovementResponse

	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		auditRepo repository.AuditRepository,
	) error {
		mov, err := movRepo.GetByID(movementID)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		if lastClose != nil && mov.CreatedAt.Before(*lastClose) {
			return domain.ErrConflict
		}

		item, err := itemRepo.GetForUpdate(mov.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}

		counters, err := ledger.Reverse(item.Counters(), mov.Type, mov.Quantity)
		if err != nil {
			return err
		}
		item.SetCounters(counters)
		item.UpdatedAt = now
		if err := itemRepo.UpdateCounters(item); err != nil {
			return err
		}
		if err := movRepo.Delete(mov.ID); err != nil {
			return err
		}

		entry := &entity.AuditEntry{
			ID:        uuid.New().String(),
			Actor:     actor,
			Action:    entity.AuditMovementReverse,
			Resource:  mov.ID,
			Detail:    fmt.Sprintf("artículo %s: reverso de %s %d (saldo %d -> %d)", item.Code, mov.Type, mov.Quantity, mov.NewQuantity, item.CurrentQuantity),
			CreatedAt: now,
		}
		if err := auditRepo.Create(entry); err != nil {
			return err
		}
		result = &dto.ApplyMovementResponse{MovementID: mov.ID, NewQuantity: item.CurrentQuantity}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
