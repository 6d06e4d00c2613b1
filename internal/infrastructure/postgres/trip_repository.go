package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/railparts-api/internal/domain/entity"
	"github.com/tu-usuario/railparts-api/internal/domain/repository"
)

var _ repository.TripRepository = (*TripRepo)(nil)

const tripColumns = `id, user_id, destination, purpose, start_date, end_date, expenses,
	report, status, created_at, updated_at`

// TripRepo implementación del puerto TripRepository sobre PostgreSQL (usable con pool o tx).
type TripRepo struct {
	q Querier
}

// NewTripRepository construye el adaptador de persistencia para comisiones. Pasar pool o tx (Querier).
func NewTripRepository(q Querier) *TripRepo {
	return &TripRepo{q: q}
}

// Create persiste una comisión de servicio.
func (r *TripRepo) Create(trip *entity.BusinessTrip) error {
	query := `
		INSERT INTO business_trips (id, user_id, destination, purpose, start_date, end_date,
			expenses, report, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		trip.ID, trip.UserID, trip.Destination, trip.Purpose, trip.StartDate, trip.EndDate,
		trip.Expenses, trip.Report, trip.Status, trip.CreatedAt, trip.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert trip: %w", err)
	}
	return nil
}

// GetByID obtiene una comisión por ID.
func (r *TripRepo) GetByID(id string) (*entity.BusinessTrip, error) {
	query := `SELECT ` + tripColumns + ` FROM business_trips WHERE id = $1`
	var t entity.BusinessTrip
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.UserID, &t.Destination, &t.Purpose, &t.StartDate, &t.EndDate,
		&t.Expenses, &t.Report, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get trip: %w", err)
	}
	return &t, nil
}

// Update actualiza una comisión existente.
func (r *TripRepo) Update(trip *entity.BusinessTrip) error {
	query := `
		UPDATE business_trips
		SET destination = $2, purpose = $3, start_date = $4, end_date = $5, expenses = $6,
			report = $7, status = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		trip.ID, trip.Destination, trip.Purpose, trip.StartDate, trip.EndDate,
		trip.Expenses, trip.Report, trip.Status, trip.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update trip: %w", err)
	}
	return nil
}

// List filtra por usuario (vacío = todos) y/o estado (vacío = todos), más recientes primero.
func (r *TripRepo) List(userID, status string, limit, offset int) ([]*entity.BusinessTrip, error) {
	query := `SELECT ` + tripColumns + ` FROM business_trips WHERE 1=1`
	args := []any{}
	if userID != "" {
		args = append(args, userID)
		query += fmt.Sprintf(` AND user_id = $%d`, len(args))
	}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	query += fmt.Sprintf(` ORDER BY start_date DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer rows.Close()

	var trips []*entity.BusinessTrip
	for rows.Next() {
		var t entity.BusinessTrip
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.Destination, &t.Purpose, &t.StartDate, &t.EndDate,
			&t.Expenses, &t.Report, &t.Status, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan trip: %w", err)
		}
		trips = append(trips, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trips: %w", err)
	}
	return trips, nil
}
