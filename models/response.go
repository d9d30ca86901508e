package models

type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type PaginationMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type PaginatedResponse struct {
	Status int            `json:"status"`
	Data   interface{}    `json:"data"`
	Meta   PaginationMeta `json:"meta"`
}

type DashboardResponse struct {
	CurrentYearRevenue  float64          `json:"current_year_revenue"`
	CurrentMonthRevenue float64          `json:"current_month_revenue"`
	TotalUsers          int64            `json:"total_users"`
	PendingOrders       int64            `json:"pending_orders"`
	YearlyRevenueChart  []MonthlyRevenue `json:"yearly_revenue_chart"`
}

type MonthlyRevenue struct {
	Month   int     `json:"month"`
	Revenue float64 `json:"revenue"`
}
