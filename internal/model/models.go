package model

import (
	"time"
)

type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Order statuses. Payment state is tracked separately via IsPaid.
const (
	OrderStatusReceived  = "RECEBIDO"
	OrderStatusWashing   = "LAVANDO"
	OrderStatusReady     = "PRONTO"
	OrderStatusDelivered = "ENTREGUE"
	OrderStatusCanceled  = "CANCELADO"
)

type Order struct {
	ID            string      `json:"id"`
	ClientID      string      `json:"client_id"`
	ClientName    string      `json:"client_name,omitempty"`
	Status        string      `json:"status"`
	Value         float64     `json:"value"`
	DueDate       *time.Time  `json:"due_date,omitempty"`
	Notes         string      `json:"notes,omitempty"`
	IsPaid        bool        `json:"is_paid"`
	PaymentMethod *string     `json:"payment_method,omitempty"`
	Fee           *float64    `json:"fee,omitempty"`
	NetValue      *float64    `json:"net_value,omitempty"`
	FeePercentage *float64    `json:"fee_percentage,omitempty"`
	PaymentDate   *time.Time  `json:"payment_date,omitempty"`
	Items         []OrderItem `json:"items,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID          string  `json:"id"`
	OrderID     string  `json:"order_id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

type StockItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Unit        string    `json:"unit"`
	Quantity    float64   `json:"quantity"`
	MinQuantity float64   `json:"min_quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Ledger entry types.
const (
	LedgerTypeIncome  = "RECEITA"
	LedgerTypeExpense = "DESPESA"
)

type LedgerEntry struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	EntryDate   time.Time `json:"entry_date"`
	OrderID     *string   `json:"order_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
