package usecase

import (
	"github.com/tu-usuario/railparts-api/internal/application/dto"
	"github.com/tu-usuario/railparts-api/internal/domain/repository"
)

// AuditUseCase lectura del registro de auditoría (solo admin).
type AuditUseCase struct {
	repo repository.AuditRepository
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(repo repository.AuditRepository) *AuditUseCase {
	return &AuditUseCase{repo: repo}
}

// List lista entradas de auditoría, más recientes primero.
func (uc *AuditUseCase) List(page dto.PageRequest) (*dto.AuditListResponse, error) {
	page.DefaultPage()
	entries, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.AuditListResponse{
		Entries: make([]dto.AuditEntryResponse, 0, len(entries)),
		Page:    dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, dto.AuditEntryResponse{
			ID:        e.ID,
			Actor:     e.Actor,
			Action:    e.Action,
			Resource:  e.Resource,
			Detail:    e.Detail,
			CreatedAt: e.CreatedAt,
		})
	}
	return resp, nil
}
