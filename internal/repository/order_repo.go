package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lavanderia/backend/internal/model"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

const orderColumns = `o.id, o.client_id, c.name, o.status, o.value, o.due_date, o.notes,
	o.is_paid, o.payment_method, o.fee, o.net_value, o.fee_percentage, o.payment_date,
	o.created_at, o.updated_at`

func scanOrder(row interface{ Scan(dest ...any) error }, o *model.Order) error {
	return row.Scan(&o.ID, &o.ClientID, &o.ClientName, &o.Status, &o.Value, &o.DueDate, &o.Notes,
		&o.IsPaid, &o.PaymentMethod, &o.Fee, &o.NetValue, &o.FeePercentage, &o.PaymentDate,
		&o.CreatedAt, &o.UpdatedAt)
}

// Insert persists the order and its items in one transaction.
func (r *OrderRepository) Insert(ctx context.Context, order *model.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	order.ID = uuid.NewString()
	err = tx.QueryRow(ctx,
		`INSERT INTO orders (id, client_id, status, value, due_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		order.ID, order.ClientID, order.Status, order.Value, order.DueDate, order.Notes).
		Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.ID = uuid.NewString()
		item.OrderID = order.ID
		_, err := tx.Exec(ctx,
			`INSERT INTO order_items (id, order_id, description, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			item.ID, item.OrderID, item.Description, item.Quantity, item.UnitPrice, item.Subtotal)
		if err != nil {
			return fmt.Errorf("insert order item %d: %w", i, err)
		}
	}

	return tx.Commit(ctx)
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	order := &model.Order{}
	err := scanOrder(r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM orders o JOIN clients c ON c.id = o.client_id WHERE o.id = $1`, orderColumns),
		id), order)
	if err != nil {
		return nil, err
	}

	items, err := r.itemsFor(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	order.Items = items
	return order, nil
}

func (r *OrderRepository) itemsFor(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, order_id, description, quantity, unit_price, subtotal
		FROM order_items WHERE order_id = $1 ORDER BY description`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.OrderItem{}
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.Description, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	Status   string
	ClientID string
	IsPaid   *bool
}

func (r *OrderRepository) List(ctx context.Context, filter ListFilter, limit, offset int) ([]model.Order, int, error) {
	where := "WHERE 1=1"
	args := []any{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND o.status = $%d", len(args))
	}
	if filter.ClientID != "" {
		args = append(args, filter.ClientID)
		where += fmt.Sprintf(" AND o.client_id = $%d", len(args))
	}
	if filter.IsPaid != nil {
		args = append(args, *filter.IsPaid)
		where += fmt.Sprintf(" AND o.is_paid = $%d", len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM orders o %s`, where), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM orders o JOIN clients c ON c.id = o.client_id
		%s ORDER BY o.created_at DESC LIMIT $%d OFFSET $%d`,
		orderColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}

	return orders, total, rows.Err()
}

// ListPaidWithMethod returns every order that is paid and carries a
// payment method, the population the bulk fee recalculation sweeps.
func (r *OrderRepository) ListPaidWithMethod(ctx context.Context) ([]model.Order, error) {
	rows, err := r.pool.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM orders o JOIN clients c ON c.id = o.client_id
		WHERE o.is_paid AND o.payment_method IS NOT NULL
		ORDER BY o.created_at`, orderColumns))
	if err != nil {
		return nil, fmt.Errorf("list paid orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	var updatedAt time.Time
	return r.pool.QueryRow(ctx,
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1 RETURNING updated_at`,
		id, status).Scan(&updatedAt)
}

// UpdatePayment marks the order paid and persists the values computed at
// confirmation time in a single statement.
func (r *OrderRepository) UpdatePayment(ctx context.Context, id, method string, fee, netValue, feePercentage float64, paymentDate time.Time) error {
	var updatedAt time.Time
	return r.pool.QueryRow(ctx,
		`UPDATE orders
		SET is_paid = TRUE, payment_method = $2, fee = $3, net_value = $4,
			fee_percentage = $5, payment_date = $6, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		id, method, fee, netValue, feePercentage, paymentDate).Scan(&updatedAt)
}

// ClearPayment reverts the order to unpaid, dropping every persisted
// payment field.
func (r *OrderRepository) ClearPayment(ctx context.Context, id string) error {
	var updatedAt time.Time
	return r.pool.QueryRow(ctx,
		`UPDATE orders
		SET is_paid = FALSE, payment_method = NULL, fee = NULL, net_value = NULL,
			fee_percentage = NULL, payment_date = NULL, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		id).Scan(&updatedAt)
}

func (r *OrderRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// MethodTotals aggregates paid orders per payment method for the
// financial report. Only persisted fee/net values are read; nothing is
// recomputed here.
type MethodTotals struct {
	Method string  `json:"payment_method"`
	Orders int     `json:"orders"`
	Gross  float64 `json:"gross_total"`
	Fees   float64 `json:"fee_total"`
	Net    float64 `json:"net_total"`
}

func (r *OrderRepository) PaidTotalsByMethod(ctx context.Context, from, to time.Time) ([]MethodTotals, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT payment_method, COUNT(*), COALESCE(SUM(value), 0),
			COALESCE(SUM(fee), 0), COALESCE(SUM(net_value), 0)
		FROM orders
		WHERE is_paid AND payment_method IS NOT NULL
			AND payment_date >= $1 AND payment_date < $2
		GROUP BY payment_method
		ORDER BY SUM(value) DESC`, from, to)
	if err != nil {
		return nil, fmt.Errorf("paid totals by method: %w", err)
	}
	defer rows.Close()

	totals := []MethodTotals{}
	for rows.Next() {
		var t MethodTotals
		if err := rows.Scan(&t.Method, &t.Orders, &t.Gross, &t.Fees, &t.Net); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
