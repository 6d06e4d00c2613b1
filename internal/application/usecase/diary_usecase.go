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

const dateLayout = "2006-01-02"

// DiaryUseCase diarios de trabajo: cada técnico escribe los suyos; supervisores
// y admin pueden editar cualquiera.
type DiaryUseCase struct {
	repo repository.DiaryRepository
}

// NewDiaryUseCase construye el caso de uso.
func NewDiaryUseCase(repo repository.DiaryRepository) *DiaryUseCase {
	return &DiaryUseCase{repo: repo}
}

// Create registra una entrada de diario para el actor.
func (uc *DiaryUseCase) Create(actor domauth.Actor, in dto.CreateDiaryRequest) (*dto.DiaryResponse, error) {
	date, err := time.Parse(dateLayout, in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	diary := &entity.WorkDiary{
		ID:        uuid.New().String(),
		AuthorID:  actor.UserID,
		Date:      date,
		Title:     in.Title,
		Content:   in.Content,
		Tags:      in.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(diary); err != nil {
		return nil, err
	}
	return toDiaryResponse(diary), nil
}

// Update modifica una entrada; requiere ser el autor o tener permiso global.
func (uc *DiaryUseCase) Update(actor domauth.Actor, id string, in dto.UpdateDiaryRequest) (*dto.DiaryResponse, error) {
	diary, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if diary == nil {
		return nil, nil
	}
	if !domauth.Can(actor, domauth.ActionDiaryWrite, diary.AuthorID) {
		return nil, domain.ErrForbidden
	}
	if in.Title != nil {
		diary.Title = *in.Title
	}
	if in.Content != nil {
		diary.Content = *in.Content
	}
	if in.Tags != nil {
		diary.Tags = *in.Tags
	}
	diary.UpdatedAt = time.Now()
	if err := uc.repo.Update(diary); err != nil {
		return nil, err
	}
	return toDiaryResponse(diary), nil
}

// Delete elimina una entrada; mismas reglas de dueño que Update.
func (uc *DiaryUseCase) Delete(actor domauth.Actor, id string) error {
	diary, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if diary == nil {
		return domain.ErrNotFound
	}
	if !domauth.Can(actor, domauth.ActionDiaryWrite, diary.AuthorID) {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(id)
}

// GetByID obtiene una entrada por ID.
func (uc *DiaryUseCase) GetByID(id string) (*dto.DiaryResponse, error) {
	diary, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if diary == nil {
		return nil, nil
	}
	return toDiaryResponse(diary), nil
}

// List lista entradas con filtros opcionales de autor y fechas.
func (uc *DiaryUseCase) List(authorID string, from, to *time.Time, page dto.PageRequest) ([]dto.DiaryResponse, error) {
	page.DefaultPage()
	diaries, err := uc.repo.List(authorID, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DiaryResponse, 0, len(diaries))
	for _, d := range diaries {
		out = append(out, *toDiaryResponse(d))
	}
	return out, nil
}

func toDiaryResponse(d *entity.WorkDiary) *dto.DiaryResponse {
	return &dto.DiaryResponse{
		ID:        d.ID,
		AuthorID:  d.AuthorID,
		Date:      d.Date.Format(dateLayout),
		Title:     d.Title,
		Content:   d.Content,
		Tags:      d.Tags,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
