package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/railparts-api/internal/application/dto"
	"github.com/tu-usuario/railparts-api/internal/domain"
	domauth "github.com/tu-usuario/railparts-api/internal/domain/auth"
	"github.com/tu-usuario/railparts-api/internal/domain/entity"
	"github.com/tu-usuario/railparts-api/internal/domain/repository"
	"github.com/tu-usuario/railparts-api/pkg/textutil"
)

// ProjectUseCase proyectos de la división (obras, mantenimientos mayores).
type ProjectUseCase struct {
	repo repository.ProjectRepository
}

// NewProjectUseCase construye el caso de uso.
func NewProjectUseCase(repo repository.ProjectRepository) *ProjectUseCase {
	return &ProjectUseCase{repo: repo}
}

// Create registra un proyecto; el actor queda como responsable.
func (uc *ProjectUseCase) Create(actor domauth.Actor, in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	code := textutil.NormalizeStored(in.Code)
	existing, _ := uc.repo.GetByCode(code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	start, err := time.Parse(dateLayout, in.StartDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	project := &entity.Project{
		ID:          uuid.New().String(),
		Code:        code,
		Name:        textutil.NormalizeStored(in.Name),
		ManagerID:   actor.UserID,
		StartDate:   start,
		Status:      entity.ProjectStatusPlanned,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(project); err != nil {
		return nil, err
	}
	return toProjectResponse(project), nil
}

// Update modifica nombre, estado, cierre o descripción de un proyecto.
func (uc *ProjectUseCase) Update(id string, in dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	project, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}
	if in.Name != nil {
		project.Name = textutil.NormalizeStored(*in.Name)
	}
	if in.EndDate != nil {
		end, err := time.Parse(dateLayout, *in.EndDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		if end.Before(project.StartDate) {
			return nil, domain.ErrInvalidInput
		}
		project.EndDate = &end
	}
	if in.Status != nil {
		project.Status = *in.Status
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	project.UpdatedAt = time.Now()
	if err := uc.repo.Update(project); err != nil {
		return nil, err
	}
	return toProjectResponse(project), nil
}

// GetByID obtiene un proyecto por ID.
func (uc *ProjectUseCase) GetByID(id string) (*dto.ProjectResponse, error) {
	project, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}
	return toProjectResponse(project), nil
}

// List lista proyectos con filtro opcional de estado.
func (uc *ProjectUseCase) List(status string, page dto.PageRequest) ([]dto.ProjectResponse, error) {
	page.DefaultPage()
	projects, err := uc.repo.List(status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, *toProjectResponse(p))
	}
	return out, nil
}

func toProjectResponse(p *entity.Project) *dto.ProjectResponse {
	resp := &dto.ProjectResponse{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		ManagerID:   p.ManagerID,
		StartDate:   p.StartDate.Format(dateLayout),
		Status:      p.Status,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.EndDate != nil {
		end := p.EndDate.Format(dateLayout)
		resp.EndDate = &end
	}
	return resp
}
