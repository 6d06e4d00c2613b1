package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/railparts-api/internal/domain"
	"github.com/tu-usuario/railparts-api/internal/domain/entity"
	"github.com/tu-usuario/railparts-api/internal/domain/repository"
)

var _ repository.DiaryRepository = (*DiaryRepo)(nil)

const diaryColumns = `id, author_id, date, title, content, tags, created_at, updated_at`

// DiaryRepo implementación del puerto DiaryRepository sobre PostgreSQL (usable con pool o tx).
type DiaryRepo struct {
	q Querier
}

// NewDiaryRepository construye el adaptador de persistencia para diarios. Pasar pool o tx (Querier).
func NewDiaryRepository(q Querier) *DiaryRepo {
	return &DiaryRepo{q: q}
}

// Create persiste una entrada de diario.
func (r *DiaryRepo) Create(diary *entity.WorkDiary) error {
	query := `
		INSERT INTO work_diaries (id, author_id, date, title, content, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		diary.ID, diary.AuthorID, diary.Date, diary.Title, diary.Content, diary.Tags,
		diary.CreatedAt, diary.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert diary: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada por ID.
func (r *DiaryRepo) GetByID(id string) (*entity.WorkDiary, error) {
	query := `SELECT ` + diaryColumns + ` FROM work_diaries WHERE id = $1`
	var d entity.WorkDiary
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.AuthorID, &d.Date, &d.Title, &d.Content, &d.Tags, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get diary: %w", err)
	}
	return &d, nil
}

// Update actualiza una entrada existente.
func (r *DiaryRepo) Update(diary *entity.WorkDiary) error {
	query := `
		UPDATE work_diaries SET title = $2, content = $3, tags = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		diary.ID, diary.Title, diary.Content, diary.Tags, diary.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update diary: %w", err)
	}
	return nil
}

// Delete elimina una entrada.
func (r *DiaryRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM work_diaries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete diary: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List filtra por autor (vacío = todos) y rango de fechas, más recientes primero.
func (r *DiaryRepo) List(authorID string, from, to *time.Time, limit, offset int) ([]*entity.WorkDiary, error) {
	query := `SELECT ` + diaryColumns + ` FROM work_diaries WHERE 1=1`
	args := []any{}
	if authorID != "" {
		args = append(args, authorID)
		query += fmt.Sprintf(` AND author_id = $%d`, len(args))
	}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(` AND date >= $%d`, len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(` AND date < $%d`, len(args))
	}
	query += fmt.Sprintf(` ORDER BY date DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list diaries: %w", err)
	}
	defer rows.Close()

	var diaries []*entity.WorkDiary
	for rows.Next() {
		var d entity.WorkDiary
		if err := rows.Scan(
			&d.ID, &d.AuthorID, &d.Date, &d.Title, &d.Content, &d.Tags, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan diary: %w", err)
		}
		diaries = append(diaries, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate diaries: %w", err)
	}
	return diaries, nil
}
