package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/railparts-api/internal/domain"
	"github.com/tu-usuario/railparts-api/internal/domain/entity"
	"github.com/tu-usuario/railparts-api/internal/domain/ledger"
	"github.com/tu-usuario/railparts-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, idempotency_key, item_id, type, quantity, unit_price,
	previous_quantity, new_quantity, reason, created_by, created_at`

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de persistencia para movimientos. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento. Una clave de idempotencia repetida retorna
// domain.ErrDuplicate (índice único sobre idempotency_key).
func (r *MovementRepo) Create(movement *entity.Movement) error {
	query := `
		INSERT INTO movements (id, idempotency_key, item_id, type, quantity, unit_price,
			previous_quantity, new_quantity, reason, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.IdempotencyKey, movement.ItemID, movement.Type,
		movement.Quantity, movement.UnitPrice, movement.PreviousQuantity,
		movement.NewQuantity, movement.Reason, movement.CreatedBy, movement.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get movement")
}

// GetByIdempotencyKey devuelve el movimiento ya registrado con esa clave, o nil.
func (r *MovementRepo) GetByIdempotencyKey(key string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE idempotency_key = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, key), "get movement by key")
}

// List filtra por artículo y rango de fechas [from, to); itemID vacío = todos.
// Más recientes primero.
func (r *MovementRepo) List(itemID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE 1=1`
	args := []any{}
	if itemID != "" {
		args = append(args, itemID)
		query += fmt.Sprintf(` AND item_id = $%d`, len(args))
	}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(` AND created_at >= $%d`, len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(` AND created_at < $%d`, len(args))
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var movements []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(
			&m.ID, &m.IdempotencyKey, &m.ItemID, &m.Type, &m.Quantity, &m.UnitPrice,
			&m.PreviousQuantity, &m.NewQuantity, &m.Reason, &m.CreatedBy, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		movements = append(movements, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movements: %w", err)
	}
	return movements, nil
}

// Delete elimina una fila del historial. Solo el reverso administrativo la usa.
func (r *MovementRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SumSince acumula entradas y salidas de un artículo desde la fecha dada
// (exclusiva), con la misma convención de signos que el ledger: IN suma a
// entradas, OUT y DISPOSAL a salidas, ADJUSTMENT según su signo.
func (r *MovementRepo) SumSince(itemID string, since time.Time) (repository.MovementSums, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE
				WHEN type = $3 THEN quantity
				WHEN type = $4 AND quantity > 0 THEN quantity
				ELSE 0 END), 0) AS stock_in,
			COALESCE(SUM(CASE
				WHEN type IN ($5, $6) THEN quantity
				WHEN type = $4 AND quantity < 0 THEN -quantity
				ELSE 0 END), 0) AS stock_out
		FROM movements
		WHERE item_id = $1 AND created_at > $2`
	var sums repository.MovementSums
	err := r.q.QueryRow(context.Background(), query,
		itemID, since,
		ledger.MovementTypeIN, ledger.MovementTypeADJUSTMENT,
		ledger.MovementTypeOUT, ledger.MovementTypeDISPOSAL,
	).Scan(&sums.StockIn, &sums.StockOut)
	if err != nil {
		return repository.MovementSums{}, fmt.Errorf("sum movements: %w", err)
	}
	return sums, nil
}

func (r *MovementRepo) scanOne(row pgx.Row, op string) (*entity.Movement, error) {
	var m entity.Movement
	err := row.Scan(
		&m.ID, &m.IdempotencyKey, &m.ItemID, &m.Type, &m.Quantity, &m.UnitPrice,
		&m.PreviousQuantity, &m.NewQuantity, &m.Reason, &m.CreatedBy, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &m, nil
}
