package service

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"github.com/lavanderia/backend/internal/repository"
)

const dashboardCacheKey = "dashboard"

type DashboardService struct {
	repo  *repository.DashboardRepository
	cache *gocache.Cache
}

func NewDashboardService(repo *repository.DashboardRepository) *DashboardService {
	return &DashboardService{
		repo:  repo,
		cache: gocache.New(30*time.Second, time.Minute),
	}
}

type Dashboard struct {
	OrdersByStatus  map[string]int `json:"orders_by_status"`
	MonthGrossTotal float64        `json:"month_gross_total"`
	MonthNetTotal   float64        `json:"month_net_total"`
	UnpaidTotal     float64        `json:"unpaid_total"`
	LowStockItems   int            `json:"low_stock_items"`
	GeneratedAt     time.Time      `json:"generated_at"`
}

// GetDashboard gathers the landing-page aggregates, running the queries
// in parallel and caching the result briefly.
func (s *DashboardService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	if cached, ok := s.cache.Get(dashboardCacheKey); ok {
		return cached.(*Dashboard), nil
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	dash := &Dashboard{GeneratedAt: now}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		dash.OrdersByStatus, err = s.repo.CountOrdersByStatus(gctx)
		return err
	})

	g.Go(func() error {
		var err error
		dash.MonthGrossTotal, dash.MonthNetTotal, err = s.repo.RevenueForPeriod(gctx, monthStart, monthEnd)
		return err
	})

	g.Go(func() error {
		var err error
		dash.UnpaidTotal, err = s.repo.UnpaidTotal(gctx)
		return err
	})

	g.Go(func() error {
		var err error
		dash.LowStockItems, err = s.repo.LowStockCount(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.cache.SetDefault(dashboardCacheKey, dash)
	return dash, nil
}

// Invalidate drops the cached dashboard so the next read is fresh.
// Called after the bulk fee recalculation rewrites net values.
func (s *DashboardService) Invalidate() {
	s.cache.Delete(dashboardCacheKey)
}
