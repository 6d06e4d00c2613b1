package inventory

import (
	"context"
	"time"

	"github.com/tu-usuario/railparts-api/internal/application/dto"
	"github.com/tu-usuario/railparts-api/internal/domain/repository"
)

// ListMovementsUseCase consulta del historial de movimientos.
type ListMovementsUseCase struct {
	movRepo repository.MovementRepository
}

// NewListMovementsUseCase construye el caso de uso.
func NewListMovementsUseCase(movRepo repository.MovementRepository) *ListMovementsUseCase {
	return &ListMovementsUseCase{movRepo: movRepo}
}

// List filtra por artículo (vacío = todos) y rango [from, to), más recientes primero.
func (uc *ListMovementsUseCase) List(ctx context.Context, itemID string, from, to *time.Time, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.DefaultPage()
	movements, err := uc.movRepo.List(itemID, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.MovementListResponse{
		Movements: make([]dto.MovementResponse, 0, len(movements)),
		Page:      dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, m := range movements {
		resp.Movements = append(resp.Movements, dto.MovementResponse{
			ID:               m.ID,
			ItemID:           m.ItemID,
			Type:             m.Type,
			Quantity:         m.Quantity,
			UnitPrice:        m.UnitPrice,
			PreviousQuantity: m.PreviousQuantity,
			NewQuantity:      m.NewQuantity,
			Reason:           m.Reason,
			CreatedBy:        m.CreatedBy,
			CreatedAt:        m.CreatedAt,
		})
	}
	return resp, nil
}
