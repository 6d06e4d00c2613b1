package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/railparts-api/internal/domain"
	"github.com/tu-usuario/railparts-api/internal/domain/entity"
	"github.com/tu-usuario/railparts-api/internal/domain/repository"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

const projectColumns = `id, code, name, manager_id, start_date, end_date, status, description, created_at, updated_at`

// ProjectRepo implementación del puerto ProjectRepository sobre PostgreSQL (usable con pool o tx).
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador de persistencia para proyectos. Pasar pool o tx (Querier).
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

// Create persiste un proyecto. Code es único.
func (r *ProjectRepo) Create(project *entity.Project) error {
	query := `
		INSERT INTO projects (id, code, name, manager_id, start_date, end_date, status, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		project.ID, project.Code, project.Name, project.ManagerID, project.StartDate,
		project.EndDate, project.Status, project.Description, project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// GetByID obtiene un proyecto por ID.
func (r *ProjectRepo) GetByID(id string) (*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get project")
}

// GetByCode obtiene un proyecto por código interno.
func (r *ProjectRepo) GetByCode(code string) (*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE code = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, code), "get project by code")
}

// Update actualiza un proyecto existente.
func (r *ProjectRepo) Update(project *entity.Project) error {
	query := `
		UPDATE projects
		SET name = $2, end_date = $3, status = $4, description = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		project.ID, project.Name, project.EndDate, project.Status, project.Description,
		project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

// List lista proyectos con filtro opcional de estado, más recientes primero.
func (r *ProjectRepo) List(status string, limit, offset int) ([]*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	args := []any{}
	if status != "" {
		args = append(args, status)
		query += ` WHERE status = $1`
	}
	query += fmt.Sprintf(` ORDER BY start_date DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []*entity.Project
	for rows.Next() {
		var p entity.Project
		if err := rows.Scan(
			&p.ID, &p.Code, &p.Name, &p.ManagerID, &p.StartDate, &p.EndDate, &p.Status,
			&p.Description, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

func (r *ProjectRepo) scanOne(row pgx.Row, op string) (*entity.Project, error) {
	var p entity.Project
	err := row.Scan(
		&p.ID, &p.Code, &p.Name, &p.ManagerID, &p.StartDate, &p.EndDate, &p.Status,
		&p.Description, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}
