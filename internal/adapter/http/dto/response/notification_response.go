package response

import (
	"time"

	"polarizados_ya/internal/domain/entities"
)

type NotificationResponse struct {
	ID                string    `json:"id"`
	NotificationType  string    `json:"notification_type"`
	Title             string    `json:"title"`
	Message           string    `json:"message"`
	Read              bool      `json:"read"`
	RelatedEntityType string    `json:"related_entity_type,omitempty"`
	RelatedEntityID   string    `json:"related_entity_id,omitempty"`
	SentAt            time.Time `json:"sent_at"`
	CreatedAt         time.Time `json:"created_at"`
}

func FromNotification(n entities.Notification) NotificationResponse {
	return NotificationResponse{
		ID:                n.ID,
		NotificationType:  string(n.NotificationType),
		Title:             n.Title,
		Message:           n.Message,
		Read:              n.Read,
		RelatedEntityType: n.RelatedEntityType,
		RelatedEntityID:   n.RelatedEntityID,
		SentAt:            n.SentAt,
		CreatedAt:         n.CreatedAt,
	}
}

func FromNotifications(ns []entities.Notification) []NotificationResponse {
	out := make([]NotificationResponse, len(ns))
	for i, n := range ns {
		out[i] = FromNotification(n)
	}
	return out
}

type DashboardStatsResponse struct {
	TodayAppointments int            `json:"today_appointments"`
	OrdersByStatus    map[string]int `json:"orders_by_status"`
	TotalVehicles     int            `json:"total_vehicles"`
	PendingQuotes     int            `json:"pending_quotes"`
	TotalActiveOrders int            `json:"total_active_orders"`
	CompletedToday    int            `json:"completed_today"`
}

func FromDashboardStats(s entities.DashboardStats) DashboardStatsResponse {
	byStatus := make(map[string]int, len(s.OrdersByStatus))
	for k, v := range s.OrdersByStatus {
		byStatus[string(k)] = v
	}
	return DashboardStatsResponse{
		TodayAppointments: s.TodayAppointments,
		OrdersByStatus:    byStatus,
		TotalVehicles:     s.TotalVehicles,
		PendingQuotes:     s.PendingQuotes,
		TotalActiveOrders: s.TotalActiveOrders,
		CompletedToday:    s.CompletedToday,
	}
}
