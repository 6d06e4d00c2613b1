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

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, code, name, specification, location, unit, unit_price, min_stock,
	closing_quantity, stock_in, stock_out, current_quantity, status, created_at, updated_at`

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para artículos. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un artículo nuevo con sus contadores iniciales.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (id, code, name, specification, location, unit, unit_price, min_stock,
			closing_quantity, stock_in, stock_out, current_quantity, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Code, item.Name, item.Specification, item.Location, item.Unit,
		item.UnitPrice, item.MinStock, item.ClosingQuantity, item.StockIn, item.StockOut,
		item.CurrentQuantity, item.Status, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get item")
}

// GetByCode obtiene un artículo por código de parte.
func (r *ItemRepo) GetByCode(code string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE code = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, code), "get item by code")
}

// GetForUpdate obtiene un artículo bloqueando su fila. Solo tiene sentido
// dentro de una transacción.
func (r *ItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get item for update")
}

// UpdateCounters persiste contadores, cantidad actual y estado derivado.
func (r *ItemRepo) UpdateCounters(item *entity.Item) error {
	query := `
		UPDATE items
		SET closing_quantity = $2, stock_in = $3, stock_out = $4, current_quantity = $5,
			status = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ClosingQuantity, item.StockIn, item.StockOut, item.CurrentQuantity,
		item.Status, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item counters: %w", err)
	}
	return nil
}

// Update persiste los datos descriptivos. No toca contadores.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items
		SET name = $2, specification = $3, location = $4, unit = $5, unit_price = $6,
			min_stock = $7, status = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Specification, item.Location, item.Unit,
		item.UnitPrice, item.MinStock, item.Status, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// List busca por término normalizado en código o nombre (vacío = todos), con paginación.
func (r *ItemRepo) List(q string, limit, offset int) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items`
	args := []any{}
	if q != "" {
		query += ` WHERE lower(code) LIKE $1 OR lower(name) LIKE $1`
		args = append(args, "%"+q+"%")
	}
	query += fmt.Sprintf(` ORDER BY code LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListActive devuelve todos los artículos no discontinuados.
func (r *ItemRepo) ListActive() ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE status <> $1 ORDER BY code`
	rows, err := r.q.Query(context.Background(), query, entity.ItemStatusDiscontinued)
	if err != nil {
		return nil, fmt.Errorf("list active items: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListActiveForUpdate devuelve todos los artículos no discontinuados con sus
// filas bloqueadas, para el lote de cierre. Solo dentro de una transacción.
func (r *ItemRepo) ListActiveForUpdate() ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE status <> $1 ORDER BY code FOR UPDATE`
	rows, err := r.q.Query(context.Background(), query, entity.ItemStatusDiscontinued)
	if err != nil {
		return nil, fmt.Errorf("list active items for update: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *ItemRepo) scanOne(row pgx.Row, op string) (*entity.Item, error) {
	var i entity.Item
	err := row.Scan(
		&i.ID, &i.Code, &i.Name, &i.Specification, &i.Location, &i.Unit, &i.UnitPrice,
		&i.MinStock, &i.ClosingQuantity, &i.StockIn, &i.StockOut, &i.CurrentQuantity,
		&i.Status, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &i, nil
}

func (r *ItemRepo) scanMany(rows pgx.Rows) ([]*entity.Item, error) {
	var items []*entity.Item
	for rows.Next() {
		var i entity.Item
		if err := rows.Scan(
			&i.ID, &i.Code, &i.Name, &i.Specification, &i.Location, &i.Unit, &i.UnitPrice,
			&i.MinStock, &i.ClosingQuantity, &i.StockIn, &i.StockOut, &i.CurrentQuantity,
			&i.Status, &i.CreatedAt, &i.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, &i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}
