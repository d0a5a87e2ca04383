package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lavanderia/backend/internal/model"
)

// DashboardRepository serves the aggregate queries behind the dashboard.
// Everything reads persisted columns; fee/net values are never recomputed
// outside the reconciliation entry points.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

func (r *DashboardRepository) CountOrdersByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count orders by status: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// RevenueForPeriod sums gross and net values of orders paid in [from, to).
func (r *DashboardRepository) RevenueForPeriod(ctx context.Context, from, to time.Time) (gross, net float64, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(value), 0), COALESCE(SUM(COALESCE(net_value, value)), 0)
		FROM orders
		WHERE is_paid AND payment_date >= $1 AND payment_date < $2`,
		from, to).Scan(&gross, &net)
	return gross, net, err
}

// UnpaidTotal sums the gross value of open, unpaid orders.
func (r *DashboardRepository) UnpaidTotal(ctx context.Context) (float64, error) {
	var total float64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(value), 0) FROM orders WHERE NOT is_paid AND status <> $1`,
		model.OrderStatusCanceled).Scan(&total)
	return total, err
}

func (r *DashboardRepository) LowStockCount(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM stock_items WHERE quantity <= min_quantity`).Scan(&count)
	return count, err
}
