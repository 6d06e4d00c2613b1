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

var _ repository.ScheduleRepository = (*ScheduleRepo)(nil)

const scheduleColumns = `id, owner_id, title, detail, starts_at, ends_at, shared, created_at, updated_at`

// ScheduleRepo implementación del puerto ScheduleRepository sobre PostgreSQL (usable con pool o tx).
type ScheduleRepo struct {
	q Querier
}

// NewScheduleRepository construye el adaptador de persistencia para agenda. Pasar pool o tx (Querier).
func NewScheduleRepository(q Querier) *ScheduleRepo {
	return &ScheduleRepo{q: q}
}

// Create persiste un evento de agenda.
func (r *ScheduleRepo) Create(event *entity.ScheduleEvent) error {
	query := `
		INSERT INTO schedule_events (id, owner_id, title, detail, starts_at, ends_at, shared, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		event.ID, event.OwnerID, event.Title, event.Detail, event.StartsAt, event.EndsAt,
		event.Shared, event.CreatedAt, event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert schedule event: %w", err)
	}
	return nil
}

// GetByID obtiene un evento por ID.
func (r *ScheduleRepo) GetByID(id string) (*entity.ScheduleEvent, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedule_events WHERE id = $1`
	var e entity.ScheduleEvent
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.OwnerID, &e.Title, &e.Detail, &e.StartsAt, &e.EndsAt, &e.Shared,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get schedule event: %w", err)
	}
	return &e, nil
}

// Update actualiza un evento existente.
func (r *ScheduleRepo) Update(event *entity.ScheduleEvent) error {
	query := `
		UPDATE schedule_events
		SET title = $2, detail = $3, starts_at = $4, ends_at = $5, shared = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		event.ID, event.Title, event.Detail, event.StartsAt, event.EndsAt, event.Shared,
		event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update schedule event: %w", err)
	}
	return nil
}

// Delete elimina un evento.
func (r *ScheduleRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM schedule_events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete schedule event: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListVisible devuelve eventos compartidos más los propios del usuario que
// intersecan la ventana [from, to), ordenados por comienzo.
func (r *ScheduleRepo) ListVisible(userID string, from, to time.Time) ([]*entity.ScheduleEvent, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedule_events
		WHERE (shared OR owner_id = $1) AND starts_at < $3 AND ends_at > $2
		ORDER BY starts_at`
	rows, err := r.q.Query(context.Background(), query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list schedule events: %w", err)
	}
	defer rows.Close()

	var events []*entity.ScheduleEvent
	for rows.Next() {
		var e entity.ScheduleEvent
		if err := rows.Scan(
			&e.ID, &e.OwnerID, &e.Title, &e.Detail, &e.StartsAt, &e.EndsAt, &e.Shared,
			&e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan schedule event: %w", err)
		}
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schedule events: %w", err)
	}
	return events, nil
}
