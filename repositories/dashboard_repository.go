package repositories

import (
	"context"
	"time"

	"tech-shop/config"
	"tech-shop/models"
)

type DashboardRepository struct{}

func NewDashboardRepository() *DashboardRepository {
	return &DashboardRepository{}
}

// RevenueBetween sums totals of non-cancelled orders placed in [start, end).
func (r *DashboardRepository) RevenueBetween(ctx context.Context, start, end time.Time) (float64, error) {
	var revenue float64
	err := config.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_amount), 0)
		 FROM orders
		 WHERE status <> $1 AND order_date >= $2 AND order_date < $3`,
		models.OrderStatusCancelled, start, end).Scan(&revenue)
	return revenue, err
}

func (r *DashboardRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := config.DB.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

func (r *DashboardRepository) CountOrdersByStatus(ctx context.Context, status models.OrderStatus) (int64, error) {
	var count int64
	err := config.DB.QueryRow(ctx, "SELECT COUNT(*) FROM orders WHERE status = $1", status).Scan(&count)
	return count, err
}

// MonthlyRevenue returns (month, revenue) pairs for the given year. Months
// without orders are absent; the service fills the gaps. Orders are bucketed
// by their UTC timestamp, matching the UTC windows RevenueBetween is called
// with, so both aggregates agree near month boundaries.
func (r *DashboardRepository) MonthlyRevenue(ctx context.Context, year int) ([]models.MonthlyRevenue, error) {
	rows, err := config.DB.Query(ctx,
		`SELECT EXTRACT(MONTH FROM order_date AT TIME ZONE 'UTC')::int AS month, COALESCE(SUM(total_amount), 0)
		 FROM orders
		 WHERE status <> $1 AND EXTRACT(YEAR FROM order_date AT TIME ZONE 'UTC') = $2
		 GROUP BY month
		 ORDER BY month`,
		models.OrderStatusCancelled, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []models.MonthlyRevenue{}
	for rows.Next() {
		var m models.MonthlyRevenue
		if err := rows.Scan(&m.Month, &m.Revenue); err != nil {
			return nil, err
		}
		results = append(results, m)
	}

	return results, rows.Err()
}
