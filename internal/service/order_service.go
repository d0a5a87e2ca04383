package service

import (
	"context"
	"fmt"

	"github.com/lavanderia/backend/internal/dto"
	"github.com/lavanderia/backend/internal/fees"
	"github.com/lavanderia/backend/internal/model"
	"github.com/lavanderia/backend/internal/repository"
)

type OrderService struct {
	orderRepo  *repository.OrderRepository
	clientRepo *repository.ClientRepository
}

func NewOrderService(orderRepo *repository.OrderRepository, clientRepo *repository.ClientRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo, clientRepo: clientRepo}
}

// CreateOrder computes item subtotals and the gross order value, then
// persists the order with its items. The gross value is what the fee
// computation later works from.
func (s *OrderService) CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*model.Order, error) {
	if _, err := s.clientRepo.GetByID(ctx, req.ClientID); err != nil {
		return nil, fmt.Errorf("check client: %w", err)
	}

	items := make([]model.OrderItem, len(req.Items))
	var value float64
	for i, it := range req.Items {
		subtotal := fees.Round2(it.Quantity * it.UnitPrice)
		items[i] = model.OrderItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    subtotal,
		}
		value += subtotal
	}

	order := &model.Order{
		ClientID: req.ClientID,
		Status:   model.OrderStatusReceived,
		Value:    fees.Round2(value),
		DueDate:  req.DueDate,
		Notes:    req.Notes,
		Items:    items,
	}

	if err := s.orderRepo.Insert(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

func (s *OrderService) ListOrders(ctx context.Context, filter repository.ListFilter, limit, offset int) ([]model.Order, int, error) {
	return s.orderRepo.List(ctx, filter, limit, offset)
}

var validStatuses = map[string]bool{
	model.OrderStatusReceived:  true,
	model.OrderStatusWashing:   true,
	model.OrderStatusReady:     true,
	model.OrderStatusDelivered: true,
	model.OrderStatusCanceled:  true,
}

func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) error {
	if !validStatuses[status] {
		return fmt.Errorf("unknown order status %q", status)
	}
	return s.orderRepo.UpdateStatus(ctx, id, status)
}

func (s *OrderService) DeleteOrder(ctx context.Context, id string) (bool, error) {
	return s.orderRepo.Delete(ctx, id)
}
