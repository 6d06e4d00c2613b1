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

// ReconcileUseCase verifica y repara la consistencia del libro de un artículo.
//
// Recheck rederiva la cantidad actual desde los tres contadores persistidos y
// la sobreescribe; Rebuild reconstruye además stock_in/stock_out plegando el
// historial de movimientos desde el último cierre. Con la aplicación
// transaccional de movimientos ambos son herramientas operativas, no un
// requisito de corrección.
type ReconcileUseCase struct {
	txRunner    TxRunner
	closingRepo repository.ClosingRepository
}

// NewReconcileUseCase construye el caso de uso.
func NewReconcileUseCase(txRunner TxRunner, closingRepo repository.ClosingRepository) *ReconcileUseCase {
	return &ReconcileUseCase{txRunner: txRunner, closingRepo: closingRepo}
}

// RecheckItem recalcula current_quantity = closing + in - out y lo persiste.
func (uc *ReconcileUseCase) RecheckItem(ctx context.Context, itemID string) (*dto.RecheckResponse, error) {
	if itemID == "" {
		return nil, domain.ErrInvalidInput
	}
	var result *dto.RecheckResponse
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.MovementRepository,
		_ repository.AuditRepository,
	) error {
		item, err := itemRepo.GetForUpdate(itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		derived := ledger.Current(item.Counters())
		changed := item.CurrentQuantity != derived
		item.SetCounters(item.Counters())
		if changed {
			item.UpdatedAt = time.Now()
			if err := itemRepo.UpdateCounters(item); err != nil {
				return err
			}
		}
		result = recheckResponse(item, changed)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RebuildFromHistory reconstruye los acumulados del artículo desde el historial
// de movimientos posterior al último cierre y sobreescribe los contadores.
// Es la lectura de reconciliación para reparar una escritura parcial; queda
// registrada en auditoría.
func (uc *ReconcileUseCase) RebuildFromHistory(ctx context.Context, itemID, actor string) (*dto.RecheckResponse, error) {
	if itemID == "" {
		return nil, domain.ErrInvalidInput
	}
	lastClose, err := uc.closingRepo.LatestCommitTime()
	if err != nil {
		return nil, err
	}
	since := time.Time{}
	if lastClose != nil {
		since = *lastClose
	}

	now := time.Now()
	var result *dto.RecheckResponse
	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		auditRepo repository.AuditRepository,
	) error {
		item, err := itemRepo.GetForUpdate(itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		sums, err := movRepo.SumSince(item.ID, since)
		if err != nil {
			return err
		}
		rebuilt := ledger.Counters{Closing: item.ClosingQuantity, StockIn: sums.StockIn, StockOut: sums.StockOut}
		changed := rebuilt != item.Counters() || item.CurrentQuantity != ledger.Current(rebuilt)
		item.SetCounters(rebuilt)
		if changed {
			item.UpdatedAt = now
			if err := itemRepo.UpdateCounters(item); err != nil {
				return err
			}
			entry := &entity.AuditEntry{
				ID:        uuid.New().String(),
				Actor:     actor,
				Action:    entity.AuditItemRebuild,
				Resource:  item.ID,
				Detail:    fmt.Sprintf("artículo %s: contadores reconstruidos desde historial (in=%d, out=%d, actual=%d)", item.Code, sums.StockIn, sums.StockOut, item.CurrentQuantity),
				CreatedAt: now,
			}
			if err := auditRepo.Create(entry); err != nil {
				return err
			}
		}
		result = recheckResponse(item, changed)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func recheckResponse(item *entity.Item, changed bool) *dto.RecheckResponse {
	return &dto.RecheckResponse{
		ItemID:          item.ID,
		ClosingQuantity: item.ClosingQuantity,
		StockIn:         item.StockIn,
		StockOut:        item.StockOut,
		CurrentQuantity: item.CurrentQuantity,
		Changed:         changed,
	}
}
