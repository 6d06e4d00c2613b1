// Package closing implementa el proceso de cierre de inventario: la foto
// periódica que pliega la cantidad actual como nueva base y deja en cero los
// acumulados de entradas y salidas.
//
// Estados del proceso: Idle → Validating → Previewing → Committing → Closed | Failed.
// Preview cubre Validating/Previewing sin persistir nada; Commit ejecuta
// Committing dentro de una transacción y termina en Closed o Failed, nunca en
// un éxito parcial silencioso.
package closing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/railparts-api/internal/application/dto"
	"github.com/tu-usuario/railparts-api/internal/domain"
	"github.com/tu-usuario/railparts-api/internal/domain/entity"
	"github.com/tu-usuario/railparts-api/internal/domain/ledger"
	"github.com/tu-usuario/railparts-api/internal/domain/repository"
)

// DateLayout formato de fecha de cierre en la API.
const DateLayout = "2006-01-02"

// TxRunner ejecuta el lote de cierre dentro de una transacción.
type TxRunner interface {
	RunClosing(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		closingRepo repository.ClosingRepository,
		auditRepo repository.AuditRepository,
	) error) error
}

// UseCase casos de uso del cierre: previsualización y commit.
type UseCase struct {
	itemRepo    repository.ItemRepository
	closingRepo repository.ClosingRepository
	txRunner    TxRunner
}

// NewUseCase construye el caso de uso.
func NewUseCase(itemRepo repository.ItemRepository, closingRepo repository.ClosingRepository, txRunner TxRunner) *UseCase {
	return &UseCase{itemRepo: itemRepo, closingRepo: closingRepo, txRunner: txRunner}
}

// validateDate rechaza fechas futuras y catálogos vacíos no se validan aquí
// (se comprueban sobre el conjunto de artículos en cada operación).
func validateDate(date time.Time) error {
	today := time.Now().Truncate(24 * time.Hour)
	if date.After(today) {
		return fmt.Errorf("%w: la fecha de cierre no puede ser futura", domain.ErrInvalidInput)
	}
	return nil
}

// Preview calcula, sin persistir, lo que quedaría congelado por artículo si se
// cierra en la fecha dada. El caller puede abortar después de verla.
func (uc *UseCase) Preview(ctx context.Context, date time.Time) (*dto.ClosingPreviewResponse, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	items, err := uc.itemRepo.ListActive()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no hay artículos para cerrar", domain.ErrInvalidInput)
	}

	resp := &dto.ClosingPreviewResponse{
		ClosingDate: date.Format(DateLayout),
		Rows:        make([]dto.ClosingPreviewRow, 0, len(items)),
		TotalAmount: decimal.Zero,
	}
	for _, item := range items {
		amount := item.UnitPrice.Mul(decimal.NewFromInt(item.CurrentQuantity))
		resp.Rows = append(resp.Rows, dto.ClosingPreviewRow{
			ItemID:          item.ID,
			ItemCode:        item.Code,
			ItemName:        item.Name,
			CurrentQuantity: item.CurrentQuantity,
			UnitPrice:       item.UnitPrice,
			TotalAmount:     amount,
		})
		resp.TotalAmount = resp.TotalAmount.Add(amount)
	}
	return resp, nil
}

// Commit ejecuta el cierre: un snapshot por artículo y el reinicio de
// contadores, todo en una transacción. Si cualquier artículo falla, no queda
// nada persistido y la respuesta reporta FAILED con el punto donde falló.
func (uc *UseCase) Commit(ctx context.Context, date time.Time, actor string) (*dto.CommitClosingResponse, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	exists, err := uc.closingRepo.ExistsForDate(date)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: ya existe un cierre para %s", domain.ErrDuplicate, date.Format(DateLayout))
	}

	now := time.Now()
	processed := 0
	total := 0

	err = uc.txRunner.RunClosing(ctx, func(
		itemRepo repository.ItemRepository,
		closingRepo repository.ClosingRepository,
		auditRepo repository.AuditRepository,
	) error {
		items, err := itemRepo.ListActiveForUpdate()
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return fmt.Errorf("%w: no hay artículos para cerrar", domain.ErrInvalidInput)
		}
		total = len(items)

		for _, item := range items {
			snapshot := &entity.ClosingSnapshot{
				ID:              uuid.New().String(),
				ClosingDate:     date,
				ItemID:          item.ID,
				ItemCode:        item.Code,
				ItemName:        item.Name,
				Specification:   item.Specification,
				Location:        item.Location,
				ClosingQuantity: item.CurrentQuantity,
				UnitPrice:       item.UnitPrice,
				TotalAmount:     item.UnitPrice.Mul(decimal.NewFromInt(item.CurrentQuantity)),
				ClosedBy:        actor,
				CreatedAt:       now,
			}
			if err := closingRepo.CreateSnapshot(snapshot); err != nil {
				return fmt.Errorf("snapshot de %s: %w", item.Code, err)
			}
			item.SetCounters(ledger.Close(item.Counters()))
			item.UpdatedAt = now
			if err := itemRepo.UpdateCounters(item); err != nil {
				return fmt.Errorf("reinicio de contadores de %s: %w", item.Code, err)
			}
			processed++
		}

		entry := &entity.AuditEntry{
			ID:        uuid.New().String(),
			Actor:     actor,
			Action:    entity.AuditClosingCommit,
			Resource:  date.Format(DateLayout),
			Detail:    fmt.Sprintf("cierre de %d artículos", processed),
			CreatedAt: now,
		}
		return auditRepo.Create(entry)
	})
	if err != nil {
		// La transacción revirtió: cero filas persistidas. processed informa
		// hasta dónde llegó el lote antes del error.
		return &dto.CommitClosingResponse{
			Status:         entity.ClosingStatusFailed,
			ClosingDate:    date.Format(DateLayout),
			ProcessedCount: processed,
			FailedCount:    total - processed,
			Reason:         err.Error(),
		}, err
	}
	return &dto.CommitClosingResponse{
		Status:         entity.ClosingStatusClosed,
		ClosingDate:    date.Format(DateLayout),
		ProcessedCount: processed,
	}, nil
}

// ListDates devuelve las fechas de cierre registradas, más recientes primero.
func (uc *UseCase) ListDates(ctx context.Context, page dto.PageRequest) ([]string, error) {
	page.DefaultPage()
	dates, err := uc.closingRepo.ListDates(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format(DateLayout))
	}
	return out, nil
}

// ListByDate devuelve los snapshots de una fecha ya cerrada.
func (uc *UseCase) ListByDate(ctx context.Context, date time.Time) (*dto.ClosingListResponse, error) {
	snapshots, err := uc.closingRepo.ListByDate(date)
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, domain.ErrNotFound
	}
	resp := &dto.ClosingListResponse{
		ClosingDate: date.Format(DateLayout),
		Snapshots:   make([]dto.ClosingSnapshotResponse, 0, len(snapshots)),
		TotalAmount: decimal.Zero,
	}
	for _, s := range snapshots {
		resp.Snapshots = append(resp.Snapshots, dto.ClosingSnapshotResponse{
			ItemID:          s.ItemID,
			ItemCode:        s.ItemCode,
			ItemName:        s.ItemName,
			Specification:   s.Specification,
			Location:        s.Location,
			ClosingQuantity: s.ClosingQuantity,
			UnitPrice:       s.UnitPrice,
			TotalAmount:     s.TotalAmount,
			ClosedBy:        s.ClosedBy,
			CreatedAt:       s.CreatedAt,
		})
		resp.TotalAmount = resp.TotalAmount.Add(s.TotalAmount)
	}
	return resp, nil
}
