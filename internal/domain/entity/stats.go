package entity

// DashboardStats is the aggregate figure block from /dashboard/stats/,
// consumed for display on the kassa header only.
type DashboardStats struct {
	TodaySales   int64 `json:"today_sales"`
	TotalSales   int64 `json:"total_sales"`
	PendingCount int   `json:"pending_count"`
}
