package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lavanderia/backend/internal/model"
)

type ClientRepository struct {
	pool *pgxpool.Pool
}

func NewClientRepository(pool *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{pool: pool}
}

func (r *ClientRepository) Insert(ctx context.Context, client *model.Client) error {
	client.ID = uuid.NewString()
	return r.pool.QueryRow(ctx,
		`INSERT INTO clients (id, name, phone, email, address, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		client.ID, client.Name, client.Phone, client.Email, client.Address, client.Notes).
		Scan(&client.CreatedAt, &client.UpdatedAt)
}

func (r *ClientRepository) GetByID(ctx context.Context, id string) (*model.Client, error) {
	client := &model.Client{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, phone, email, address, notes, created_at, updated_at
		FROM clients WHERE id = $1`, id).
		Scan(&client.ID, &client.Name, &client.Phone, &client.Email,
			&client.Address, &client.Notes, &client.CreatedAt, &client.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// List returns a page of clients, optionally filtered by a case-insensitive
// match on name or phone.
func (r *ClientRepository) List(ctx context.Context, search string, limit, offset int) ([]model.Client, int, error) {
	where := ""
	args := []any{}
	if search != "" {
		where = `WHERE name ILIKE '%' || $1 || '%' OR phone ILIKE '%' || $1 || '%'`
		args = append(args, search)
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM clients %s`, where), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count clients: %w", err)
	}

	query := fmt.Sprintf(`SELECT id, name, phone, email, address, notes, created_at, updated_at
		FROM clients %s ORDER BY name LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	clients := []model.Client{}
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email,
			&c.Address, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		clients = append(clients, c)
	}

	return clients, total, rows.Err()
}

func (r *ClientRepository) Update(ctx context.Context, client *model.Client) error {
	return r.pool.QueryRow(ctx,
		`UPDATE clients
		SET name = $2, phone = $3, email = $4, address = $5, notes = $6, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		client.ID, client.Name, client.Phone, client.Email, client.Address, client.Notes).
		Scan(&client.UpdatedAt)
}

func (r *ClientRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
