package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/lavanderia/backend/internal/fees"
	"github.com/lavanderia/backend/internal/model"
)

type seedClient struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

var seedClients = []seedClient{
	{"Maria Oliveira", "11 98888-1001", "maria.oliveira@example.com", "Rua das Acácias, 120"},
	{"João Santos", "11 97777-1002", "joao.santos@example.com", "Av. Paulista, 900, ap 42"},
	{"Ana Costa", "11 96666-1003", "ana.costa@example.com", "Rua do Comércio, 35"},
	{"Carlos Pereira", "11 95555-1004", "", "Travessa da Lavanderia, 8"},
	{"Fernanda Lima", "11 94444-1005", "fernanda.lima@example.com", "Rua Verde, 210"},
}

type seedStockItem struct {
	Name        string
	Unit        string
	Quantity    float64
	MinQuantity float64
}

var seedStock = []seedStockItem{
	{"Sabão líquido", "L", 40, 10},
	{"Amaciante", "L", 25, 8},
	{"Alvejante", "L", 12, 5},
	{"Sacos de embalagem", "un", 300, 100},
	{"Cabides", "un", 80, 120}, // below minimum on purpose, feeds the low-stock view
}

type seedOrder struct {
	clientIdx int
	status    string
	items     []model.OrderItem
	method    string // empty means unpaid
	daysAgo   int
}

var seedOrders = []seedOrder{
	{0, model.OrderStatusDelivered, []model.OrderItem{
		{Description: "Lavagem de roupa (kg)", Quantity: 8, UnitPrice: 12.50},
	}, "Pix", 20},
	{1, model.OrderStatusDelivered, []model.OrderItem{
		{Description: "Edredom casal", Quantity: 1, UnitPrice: 45.00},
		{Description: "Lavagem de roupa (kg)", Quantity: 4, UnitPrice: 12.50},
	}, "Cartão de Crédito (3x)", 12},
	{2, model.OrderStatusReady, []model.OrderItem{
		{Description: "Terno (lavagem a seco)", Quantity: 2, UnitPrice: 38.00},
	}, "", 3},
	{3, model.OrderStatusWashing, []model.OrderItem{
		{Description: "Lavagem de roupa (kg)", Quantity: 10, UnitPrice: 12.50},
		{Description: "Passadoria (peça)", Quantity: 15, UnitPrice: 3.50},
	}, "", 1},
	{4, model.OrderStatusDelivered, []model.OrderItem{
		{Description: "Cortinas (par)", Quantity: 3, UnitPrice: 30.00},
	}, "Dinheiro", 6},
}

// SeedData loads demo data for local development. It is idempotent:
// once clients exist, nothing is touched.
func SeedData(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM clients").Scan(&count); err != nil {
		return fmt.Errorf("check existing data: %w", err)
	}
	if count > 0 {
		log.Info().Msg("seed data already exists, skipping")
		return nil
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	clientIDs := make([]string, len(seedClients))
	for i, c := range seedClients {
		clientIDs[i] = uuid.NewString()
		_, err := tx.Exec(ctx,
			`INSERT INTO clients (id, name, phone, email, address, notes) VALUES ($1, $2, $3, $4, $5, '')`,
			clientIDs[i], c.Name, c.Phone, c.Email, c.Address)
		if err != nil {
			return fmt.Errorf("seed client %s: %w", c.Name, err)
		}
	}

	for _, s := range seedStock {
		_, err := tx.Exec(ctx,
			`INSERT INTO stock_items (id, name, unit, quantity, min_quantity) VALUES ($1, $2, $3, $4, $5)`,
			uuid.NewString(), s.Name, s.Unit, s.Quantity, s.MinQuantity)
		if err != nil {
			return fmt.Errorf("seed stock item %s: %w", s.Name, err)
		}
	}

	feeConfig := fees.DefaultConfig()
	feeConfig[fees.MethodDebitCard] = 2
	for n := 1; n <= fees.MaxInstallments; n++ {
		feeConfig[fees.CreditCardMethod(n)] = 3 + 0.5*float64(n-1)
	}
	rawFees, err := json.Marshal(feeConfig)
	if err != nil {
		return fmt.Errorf("encode seed fee config: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO settings (key, value) VALUES ($1, $2) ON CONFLICT (key) DO NOTHING`,
		"payment_method_fees", string(rawFees)); err != nil {
		return fmt.Errorf("seed fee config: %w", err)
	}

	for i, o := range seedOrders {
		if err := seedOneOrder(ctx, tx, clientIDs[o.clientIdx], o, feeConfig); err != nil {
			return fmt.Errorf("seed order %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit seed data: %w", err)
	}

	log.Info().
		Int("clients", len(seedClients)).
		Int("stock_items", len(seedStock)).
		Int("orders", len(seedOrders)).
		Msg("seed data loaded")
	return nil
}

func seedOneOrder(ctx context.Context, tx pgx.Tx, clientID string, o seedOrder, cfg fees.Config) error {
	orderID := uuid.NewString()
	createdAt := time.Now().UTC().AddDate(0, 0, -o.daysAgo)

	var value float64
	for i := range o.items {
		o.items[i].Subtotal = fees.Round2(o.items[i].Quantity * o.items[i].UnitPrice)
		value += o.items[i].Subtotal
	}
	value = fees.Round2(value)

	_, err := tx.Exec(ctx,
		`INSERT INTO orders (id, client_id, status, value, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, '', $5, $5)`,
		orderID, clientID, o.status, value, createdAt)
	if err != nil {
		return err
	}

	for _, it := range o.items {
		_, err := tx.Exec(ctx,
			`INSERT INTO order_items (id, order_id, description, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.NewString(), orderID, it.Description, it.Quantity, it.UnitPrice, it.Subtotal)
		if err != nil {
			return err
		}
	}

	if o.method == "" {
		return nil
	}

	netValue := fees.CalculateNetValue(value, o.method, cfg)
	fee := value - netValue
	pct := fees.Percentage(o.method, cfg)
	paymentDate := createdAt.AddDate(0, 0, 1)

	_, err = tx.Exec(ctx,
		`UPDATE orders
		SET is_paid = TRUE, payment_method = $2, fee = $3, net_value = $4,
			fee_percentage = $5, payment_date = $6
		WHERE id = $1`,
		orderID, o.method, fee, netValue, pct, paymentDate)
	if err != nil {
		return err
	}

	// Mirror the payment in the ledger so the demo report has content.
	_, err = tx.Exec(ctx,
		`INSERT INTO ledger_entries (id, type, category, description, amount, entry_date, order_id)
		VALUES ($1, $2, 'Pedidos', $3, $4, $5, $6)`,
		uuid.NewString(), model.LedgerTypeIncome,
		fmt.Sprintf("Recebimento de pedido (%s)", o.method), netValue, paymentDate, orderID)
	return err
}
