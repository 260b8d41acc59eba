package entities

// DashboardStats aggregates the counters shown on the home screen.
type DashboardStats struct {
	TodayAppointments int                   `json:"today_appointments"`
	OrdersByStatus    map[ServiceStatus]int `json:"orders_by_status"`
	TotalVehicles     int                   `json:"total_vehicles"`
	PendingQuotes     int                   `json:"pending_quotes"`
	TotalActiveOrders int                   `json:"total_active_orders"`
	CompletedToday    int                   `json:"completed_today"`
}

// NewDashboardStats builds stats from per-status order counts; every pipeline status
// is present in OrdersByStatus and everything before terminado counts as active.
func NewDashboardStats(byStatus map[ServiceStatus]int) DashboardStats {
	stats := DashboardStats{OrdersByStatus: make(map[ServiceStatus]int, len(ServiceStatuses))}
	for _, s := range ServiceStatuses {
		n := byStatus[s]
		stats.OrdersByStatus[s] = n
		if !s.Terminal() {
			stats.TotalActiveOrders += n
		}
	}
	return stats
}
