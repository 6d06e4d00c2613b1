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

var _ repository.ClosingRepository = (*ClosingRepo)(nil)

const snapshotColumns = `id, closing_date, item_id, item_code, item_name, specification,
	location, closing_quantity, unit_price, total_amount, closed_by, created_at`

// ClosingRepo implementación del puerto ClosingRepository sobre PostgreSQL (usable con pool o tx).
type ClosingRepo struct {
	q Querier
}

// NewClosingRepository construye el adaptador de persistencia para cierres. Pasar pool o tx (Querier).
func NewClosingRepository(q Querier) *ClosingRepo {
	return &ClosingRepo{q: q}
}

// CreateSnapshot persiste la foto de un artículo en una fecha de cierre.
// La pareja (closing_date, item_id) es única.
func (r *ClosingRepo) CreateSnapshot(snapshot *entity.ClosingSnapshot) error {
	query := `
		INSERT INTO closing_snapshots (id, closing_date, item_id, item_code, item_name,
			specification, location, closing_quantity, unit_price, total_amount, closed_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		snapshot.ID, snapshot.ClosingDate, snapshot.ItemID, snapshot.ItemCode,
		snapshot.ItemName, snapshot.Specification, snapshot.Location,
		snapshot.ClosingQuantity, snapshot.UnitPrice, snapshot.TotalAmount,
		snapshot.ClosedBy, snapshot.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert closing snapshot: %w", err)
	}
	return nil
}

// ExistsForDate indica si ya hay un cierre registrado para la fecha.
func (r *ClosingRepo) ExistsForDate(date time.Time) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM closing_snapshots WHERE closing_date = $1)`, date,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check closing date: %w", err)
	}
	return exists, nil
}

// LatestDate devuelve la última fecha cerrada, o nil si nunca se cerró.
func (r *ClosingRepo) LatestDate() (*time.Time, error) {
	var date time.Time
	err := r.q.QueryRow(context.Background(),
		`SELECT closing_date FROM closing_snapshots ORDER BY closing_date DESC LIMIT 1`,
	).Scan(&date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest closing date: %w", err)
	}
	return &date, nil
}

// LatestCommitTime devuelve el instante en que se registró el último cierre,
// o nil si nunca se cerró.
func (r *ClosingRepo) LatestCommitTime() (*time.Time, error) {
	// MAX sobre tabla vacía devuelve NULL, de ahí el puntero.
	var at *time.Time
	err := r.q.QueryRow(context.Background(),
		`SELECT MAX(created_at) FROM closing_snapshots`,
	).Scan(&at)
	if err != nil {
		return nil, fmt.Errorf("latest closing commit: %w", err)
	}
	return at, nil
}

// ListByDate devuelve los snapshots de una fecha de cierre, ordenados por código.
func (r *ClosingRepo) ListByDate(date time.Time) ([]*entity.ClosingSnapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM closing_snapshots WHERE closing_date = $1 ORDER BY item_code`
	rows, err := r.q.Query(context.Background(), query, date)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*entity.ClosingSnapshot
	for rows.Next() {
		var s entity.ClosingSnapshot
		if err := rows.Scan(
			&s.ID, &s.ClosingDate, &s.ItemID, &s.ItemCode, &s.ItemName, &s.Specification,
			&s.Location, &s.ClosingQuantity, &s.UnitPrice, &s.TotalAmount, &s.ClosedBy, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snapshots = append(snapshots, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return snapshots, nil
}

// ListDates devuelve las fechas de cierre registradas, más recientes primero.
func (r *ClosingRepo) ListDates(limit, offset int) ([]time.Time, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT DISTINCT closing_date FROM closing_snapshots ORDER BY closing_date DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list closing dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan closing date: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate closing dates: %w", err)
	}
	return dates, nil
}
