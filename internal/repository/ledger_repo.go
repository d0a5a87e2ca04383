package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lavanderia/backend/internal/model"
)

type LedgerRepository struct {
	pool *pgxpool.Pool
}

func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

func (r *LedgerRepository) Insert(ctx context.Context, entry *model.LedgerEntry) error {
	entry.ID = uuid.NewString()
	return r.pool.QueryRow(ctx,
		`INSERT INTO ledger_entries (id, type, category, description, amount, entry_date, order_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		entry.ID, entry.Type, entry.Category, entry.Description,
		entry.Amount, entry.EntryDate, entry.OrderID).
		Scan(&entry.CreatedAt)
}

func (r *LedgerRepository) GetByID(ctx context.Context, id string) (*model.LedgerEntry, error) {
	entry := &model.LedgerEntry{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, type, category, description, amount, entry_date, order_id, created_at
		FROM ledger_entries WHERE id = $1`, id).
		Scan(&entry.ID, &entry.Type, &entry.Category, &entry.Description,
			&entry.Amount, &entry.EntryDate, &entry.OrderID, &entry.CreatedAt)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// LedgerFilter narrows List results. Zero values mean "no filter".
type LedgerFilter struct {
	Type     string
	Category string
	From     time.Time
	To       time.Time
}

func (r *LedgerRepository) List(ctx context.Context, filter LedgerFilter, limit, offset int) ([]model.LedgerEntry, int, error) {
	where := "WHERE 1=1"
	args := []any{}

	if filter.Type != "" {
		args = append(args, filter.Type)
		where += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		where += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		where += fmt.Sprintf(" AND entry_date >= $%d", len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		where += fmt.Sprintf(" AND entry_date < $%d", len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM ledger_entries %s`, where), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count ledger entries: %w", err)
	}

	query := fmt.Sprintf(`SELECT id, type, category, description, amount, entry_date, order_id, created_at
		FROM ledger_entries %s ORDER BY entry_date DESC, created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	entries := []model.LedgerEntry{}
	for rows.Next() {
		var e model.LedgerEntry
		if err := rows.Scan(&e.ID, &e.Type, &e.Category, &e.Description,
			&e.Amount, &e.EntryDate, &e.OrderID, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}

	return entries, total, rows.Err()
}

func (r *LedgerRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM ledger_entries WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// SumByType returns total income and expenses over [from, to).
func (r *LedgerRepository) SumByType(ctx context.Context, from, to time.Time) (income, expenses float64, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = $3), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = $4), 0)
		FROM ledger_entries
		WHERE entry_date >= $1 AND entry_date < $2`,
		from, to, model.LedgerTypeIncome, model.LedgerTypeExpense).
		Scan(&income, &expenses)
	return income, expenses, err
}
