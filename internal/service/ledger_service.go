package service

import (
	"context"
	"time"

	"github.com/lavanderia/backend/internal/dto"
	"github.com/lavanderia/backend/internal/fees"
	"github.com/lavanderia/backend/internal/model"
	"github.com/lavanderia/backend/internal/repository"
)

type LedgerService struct {
	repo *repository.LedgerRepository
}

func NewLedgerService(repo *repository.LedgerRepository) *LedgerService {
	return &LedgerService{repo: repo}
}

func (s *LedgerService) CreateEntry(ctx context.Context, req *dto.LedgerEntryRequest) (*model.LedgerEntry, error) {
	entry := &model.LedgerEntry{
		Type:        req.Type,
		Category:    req.Category,
		Description: req.Description,
		Amount:      fees.Round2(req.Amount),
		EntryDate:   req.EntryDate,
		OrderID:     req.OrderID,
	}
	if err := s.repo.Insert(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *LedgerService) GetEntry(ctx context.Context, id string) (*model.LedgerEntry, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *LedgerService) ListEntries(ctx context.Context, filter repository.LedgerFilter, limit, offset int) ([]model.LedgerEntry, int, error) {
	return s.repo.List(ctx, filter, limit, offset)
}

func (s *LedgerService) DeleteEntry(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}

type MonthlySummary struct {
	Year     int     `json:"year"`
	Month    int     `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Balance  float64 `json:"balance"`
}

func (s *LedgerService) MonthlySummary(ctx context.Context, year int, month time.Month) (MonthlySummary, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	income, expenses, err := s.repo.SumByType(ctx, from, to)
	if err != nil {
		return MonthlySummary{}, err
	}

	return MonthlySummary{
		Year:     year,
		Month:    int(month),
		Income:   income,
		Expenses: expenses,
		Balance:  fees.Round2(income - expenses),
	}, nil
}
