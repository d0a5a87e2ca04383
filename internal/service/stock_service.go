package service

import (
	"context"
	"fmt"

	"github.com/lavanderia/backend/internal/dto"
	"github.com/lavanderia/backend/internal/model"
	"github.com/lavanderia/backend/internal/repository"
)

type StockService struct {
	repo *repository.StockRepository
}

func NewStockService(repo *repository.StockRepository) *StockService {
	return &StockService{repo: repo}
}

func (s *StockService) CreateItem(ctx context.Context, req *dto.StockItemRequest) (*model.StockItem, error) {
	item := &model.StockItem{
		Name:        req.Name,
		Unit:        req.Unit,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
	}
	if err := s.repo.Insert(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *StockService) GetItem(ctx context.Context, id string) (*model.StockItem, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *StockService) ListItems(ctx context.Context, lowOnly bool) ([]model.StockItem, error) {
	return s.repo.List(ctx, lowOnly)
}

func (s *StockService) UpdateItem(ctx context.Context, id string, req *dto.StockItemRequest) (*model.StockItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Name = req.Name
	item.Unit = req.Unit
	item.Quantity = req.Quantity
	item.MinQuantity = req.MinQuantity

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// ApplyMovement adjusts an item's quantity by a signed delta and returns
// the updated item.
func (s *StockService) ApplyMovement(ctx context.Context, id string, delta float64) (*model.StockItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.Quantity+delta < 0 {
		return nil, fmt.Errorf("movement of %.2f would leave %q with negative stock", delta, item.Name)
	}
	return s.repo.ApplyMovement(ctx, id, delta)
}

func (s *StockService) DeleteItem(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}
