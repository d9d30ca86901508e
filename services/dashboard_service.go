package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"tech-shop/models"
)

const dashboardCacheKey = "dashboard:admin"
const dashboardCacheTTL = 60 * time.Second

type DashboardStore interface {
	RevenueBetween(ctx context.Context, start, end time.Time) (float64, error)
	CountUsers(ctx context.Context) (int64, error)
	CountOrdersByStatus(ctx context.Context, status models.OrderStatus) (int64, error)
	MonthlyRevenue(ctx context.Context, year int) ([]models.MonthlyRevenue, error)
}

// DashboardService aggregates reporting data. Every query failure degrades
// to a zero value: the dashboard is best-effort and never fails a request
// over a broken aggregate.
type DashboardService struct {
	store DashboardStore
	cache *redis.Client
	now   func() time.Time
}

func NewDashboardService(store DashboardStore, cache *redis.Client) *DashboardService {
	return &DashboardService{store: store, cache: cache, now: time.Now}
}

func (s *DashboardService) GetDashboard(ctx context.Context) *models.DashboardResponse {
	if cached := s.fromCache(ctx); cached != nil {
		return cached
	}

	now := s.now().UTC()
	year, month := now.Year(), now.Month()

	dashboard := &models.DashboardResponse{
		CurrentYearRevenue:  s.revenue(ctx, yearStart(year), yearStart(year+1)),
		CurrentMonthRevenue: s.revenue(ctx, monthStart(year, month), monthStart(year, month+1)),
		TotalUsers:          s.userCount(ctx),
		PendingOrders:       s.pendingCount(ctx),
		YearlyRevenueChart:  s.revenueChart(ctx, year),
	}

	s.toCache(ctx, dashboard)

	return dashboard
}

func (s *DashboardService) revenue(ctx context.Context, start, end time.Time) float64 {
	revenue, err := s.store.RevenueBetween(ctx, start, end)
	if err != nil {
		log.Printf("Dashboard revenue query failed, defaulting to zero: %v", err)
		return 0
	}
	return revenue
}

func (s *DashboardService) userCount(ctx context.Context) int64 {
	count, err := s.store.CountUsers(ctx)
	if err != nil {
		log.Printf("Dashboard user count failed, defaulting to zero: %v", err)
		return 0
	}
	return count
}

func (s *DashboardService) pendingCount(ctx context.Context) int64 {
	count, err := s.store.CountOrdersByStatus(ctx, models.OrderStatusPending)
	if err != nil {
		log.Printf("Dashboard pending order count failed, defaulting to zero: %v", err)
		return 0
	}
	return count
}

// revenueChart always returns exactly 12 slots; months without revenue stay
// at zero, and a failed query leaves the whole chart zeroed.
func (s *DashboardService) revenueChart(ctx context.Context, year int) []models.MonthlyRevenue {
	chart := make([]models.MonthlyRevenue, 12)
	for i := range chart {
		chart[i] = models.MonthlyRevenue{Month: i + 1}
	}

	results, err := s.store.MonthlyRevenue(ctx, year)
	if err != nil {
		log.Printf("Dashboard revenue chart failed, defaulting to zeros: %v", err)
		return chart
	}

	for _, m := range results {
		if m.Month >= 1 && m.Month <= 12 {
			chart[m.Month-1].Revenue = m.Revenue
		}
	}

	return chart
}

func (s *DashboardService) fromCache(ctx context.Context) *models.DashboardResponse {
	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.Get(ctx, dashboardCacheKey).Result()
	if err != nil {
		return nil
	}

	dashboard := &models.DashboardResponse{}
	if err := json.Unmarshal([]byte(raw), dashboard); err != nil {
		return nil
	}

	return dashboard
}

func (s *DashboardService) toCache(ctx context.Context, dashboard *models.DashboardResponse) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(dashboard)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, dashboardCacheKey, raw, dashboardCacheTTL).Err(); err != nil {
		log.Printf("Failed to cache dashboard: %v", err)
	}
}

// Aggregation windows are UTC so they line up with the store's UTC month
// bucketing for the chart.
func yearStart(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

func monthStart(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}
