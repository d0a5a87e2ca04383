package dto

import "time"

type ClientRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

type OrderItemRequest struct {
	Description string  `json:"description" binding:"required"`
	Quantity    float64 `json:"quantity" binding:"required,gt=0"`
	UnitPrice   float64 `json:"unit_price" binding:"required,gte=0"`
}

type CreateOrderRequest struct {
	ClientID string             `json:"client_id" binding:"required,uuid"`
	DueDate  *time.Time         `json:"due_date"`
	Notes    string             `json:"notes"`
	Items    []OrderItemRequest `json:"items" binding:"required,min=1,max=100,dive"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=RECEBIDO LAVANDO PRONTO ENTREGUE CANCELADO"`
}

// ConfirmPaymentRequest confirms payment for one order. For credit-card
// payments the installment count selects the fee bracket; the fee core
// only ever sees the assembled method key.
type ConfirmPaymentRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
	Installments  int    `json:"installments" binding:"omitempty,min=1,max=12"`
}

type SaveFeesRequest struct {
	Fees map[string]float64 `json:"fees" binding:"required"`
}

type StockItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Unit        string  `json:"unit" binding:"required"`
	Quantity    float64 `json:"quantity" binding:"gte=0"`
	MinQuantity float64 `json:"min_quantity" binding:"gte=0"`
}

type StockMovementRequest struct {
	Delta  float64 `json:"delta" binding:"required"`
	Reason string  `json:"reason"`
}

type LedgerEntryRequest struct {
	Type        string    `json:"type" binding:"required,oneof=RECEITA DESPESA"`
	Category    string    `json:"category"`
	Description string    `json:"description" binding:"required"`
	Amount      float64   `json:"amount" binding:"required,gt=0"`
	EntryDate   time.Time `json:"entry_date" binding:"required"`
	OrderID     *string   `json:"order_id" binding:"omitempty,uuid"`
}
