package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lavanderia/backend/internal/model"
)

type StockRepository struct {
	pool *pgxpool.Pool
}

func NewStockRepository(pool *pgxpool.Pool) *StockRepository {
	return &StockRepository{pool: pool}
}

func (r *StockRepository) Insert(ctx context.Context, item *model.StockItem) error {
	item.ID = uuid.NewString()
	return r.pool.QueryRow(ctx,
		`INSERT INTO stock_items (id, name, unit, quantity, min_quantity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`,
		item.ID, item.Name, item.Unit, item.Quantity, item.MinQuantity).
		Scan(&item.CreatedAt, &item.UpdatedAt)
}

func (r *StockRepository) GetByID(ctx context.Context, id string) (*model.StockItem, error) {
	item := &model.StockItem{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, unit, quantity, min_quantity, created_at, updated_at
		FROM stock_items WHERE id = $1`, id).
		Scan(&item.ID, &item.Name, &item.Unit, &item.Quantity, &item.MinQuantity,
			&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// List returns stock items ordered by name. When lowOnly is set, only
// items at or below their minimum quantity are returned.
func (r *StockRepository) List(ctx context.Context, lowOnly bool) ([]model.StockItem, error) {
	where := ""
	if lowOnly {
		where = "WHERE quantity <= min_quantity"
	}

	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT id, name, unit, quantity, min_quantity, created_at, updated_at
		FROM stock_items %s ORDER BY name`, where))
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()

	items := []model.StockItem{}
	for rows.Next() {
		var it model.StockItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Unit, &it.Quantity, &it.MinQuantity,
			&it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *StockRepository) Update(ctx context.Context, item *model.StockItem) error {
	return r.pool.QueryRow(ctx,
		`UPDATE stock_items
		SET name = $2, unit = $3, quantity = $4, min_quantity = $5, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		item.ID, item.Name, item.Unit, item.Quantity, item.MinQuantity).
		Scan(&item.UpdatedAt)
}

// ApplyMovement adjusts the quantity by delta (negative for consumption)
// and returns the resulting item. The CHECK constraint on quantity
// rejects movements that would drive stock negative.
func (r *StockRepository) ApplyMovement(ctx context.Context, id string, delta float64) (*model.StockItem, error) {
	item := &model.StockItem{}
	err := r.pool.QueryRow(ctx,
		`UPDATE stock_items
		SET quantity = quantity + $2, updated_at = now()
		WHERE id = $1
		RETURNING id, name, unit, quantity, min_quantity, created_at, updated_at`,
		id, delta).
		Scan(&item.ID, &item.Name, &item.Unit, &item.Quantity, &item.MinQuantity,
			&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *StockRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM stock_items WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
