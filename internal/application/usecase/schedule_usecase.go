package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/railparts-api/internal/application/dto"
	"github.com/tu-usuario/railparts-api/internal/domain"
	domauth "github.com/tu-usuario/railparts-api/internal/domain/auth"
	"github.com/tu-usuario/railparts-api/internal/domain/entity"
	"github.com/tu-usuario/railparts-api/internal/domain/repository"
)

// ScheduleUseCase agenda de la división. Los eventos compartidos los ve todo
// el mundo; los privados solo su dueño.
type ScheduleUseCase struct {
	repo repository.ScheduleRepository
}

// NewScheduleUseCase construye el caso de uso.
func NewScheduleUseCase(repo repository.ScheduleRepository) *ScheduleUseCase {
	return &ScheduleUseCase{repo: repo}
}

// Create registra un evento para el actor.
func (uc *ScheduleUseCase) Create(actor domauth.Actor, in dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	if !in.EndsAt.After(in.StartsAt) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	event := &entity.ScheduleEvent{
		ID:        uuid.New().String(),
		OwnerID:   actor.UserID,
		Title:     in.Title,
		Detail:    in.Detail,
		StartsAt:  in.StartsAt,
		EndsAt:    in.EndsAt,
		Shared:    in.Shared,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(event); err != nil {
		return nil, err
	}
	return toScheduleResponse(event), nil
}

// Update modifica un evento; requiere ser el dueño o tener permiso global.
func (uc *ScheduleUseCase) Update(actor domauth.Actor, id string, in dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error) {
	event, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, nil
	}
	if !domauth.Can(actor, domauth.ActionScheduleWrite, event.OwnerID) {
		return nil, domain.ErrForbidden
	}
	if in.Title != nil {
		event.Title = *in.Title
	}
	if in.Detail != nil {
		event.Detail = *in.Detail
	}
	if in.StartsAt != nil {
		event.StartsAt = *in.StartsAt
	}
	if in.EndsAt != nil {
		event.EndsAt = *in.EndsAt
	}
	if !event.EndsAt.After(event.StartsAt) {
		return nil, domain.ErrInvalidInput
	}
	if in.Shared != nil {
		event.Shared = *in.Shared
	}
	event.UpdatedAt = time.Now()
	if err := uc.repo.Update(event); err != nil {
		return nil, err
	}
	return toScheduleResponse(event), nil
}

// Delete elimina un evento; mismas reglas de dueño que Update.
func (uc *ScheduleUseCase) Delete(actor domauth.Actor, id string) error {
	event, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if event == nil {
		return domain.ErrNotFound
	}
	if !domauth.Can(actor, domauth.ActionScheduleWrite, event.OwnerID) {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(id)
}

// ListVisible devuelve los eventos del actor más los compartidos dentro de la
// ventana [from, to).
func (uc *ScheduleUseCase) ListVisible(actor domauth.Actor, from, to time.Time) ([]dto.ScheduleResponse, error) {
	if !to.After(from) {
		return nil, domain.ErrInvalidInput
	}
	events, err := uc.repo.ListVisible(actor.UserID, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ScheduleResponse, 0, len(events))
	for _, e := range events {
		out = append(out, *toScheduleResponse(e))
	}
	return out, nil
}

func toScheduleResponse(e *entity.ScheduleEvent) *dto.ScheduleResponse {
	return &dto.ScheduleResponse{
		ID:        e.ID,
		OwnerID:   e.OwnerID,
		Title:     e.Title,
		Detail:    e.Detail,
		StartsAt:  e.StartsAt,
		EndsAt:    e.EndsAt,
		Shared:    e.Shared,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
