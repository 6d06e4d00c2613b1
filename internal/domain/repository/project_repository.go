package repository

import "github.com/tu-usuario/railparts-api/internal/domain/entity"

// ProjectRepository puerto de persistencia para proyectos.
type ProjectRepository interface {
	Create(project *entity.Project) error
	GetByID(id string) (*entity.Project, error)
	GetByCode(code string) (*entity.Project, error)
	Update(project *entity.Project) error
	List(status string, limit, offset int) ([]*entity.Project, error)
}
