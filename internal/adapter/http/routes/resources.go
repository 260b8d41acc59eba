package routes

import (
	"polarizados_ya/internal/adapter/http/handlers"
	"polarizados_ya/internal/adapter/http/middleware"
	"polarizados_ya/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

const (
	PathAuth          = "/auth"
	PathUsers         = "/users"
	PathVehicles      = "/vehicles"
	PathAppointments  = "/appointments"
	PathInspections   = "/inspections"
	PathQuotes        = "/quotes"
	PathServiceOrders = "/service-orders"
	PathNotifications = "/notifications"
	PathDashboard     = "/dashboard"
)

func addAuthRoutes(rg *gin.RouterGroup, h *handlers.AuthHandler, authenticated, limited gin.HandlerFunc) {
	auth := rg.Group(PathAuth)
	{
		auth.POST("/register", limited, h.Register)
		auth.POST("/login", limited, h.Login)
		auth.GET("/me", authenticated, h.Me)
	}
}

func addUserRoutes(rg *gin.RouterGroup, h *handlers.UserHandler) {
	users := rg.Group(PathUsers)
	{
		users.GET("", middleware.RequireRoles(entities.UserRoleAdmin), h.List)
		users.GET("/technicians", h.ListTechnicians)
		users.PUT("/:id/role", middleware.RequireRoles(entities.UserRoleAdmin), h.UpdateRole)
	}
}

func addVehicleRoutes(rg *gin.RouterGroup, h *handlers.VehicleHandler) {
	vehicles := rg.Group(PathVehicles)
	{
		vehicles.POST("", h.Create)
		vehicles.GET("", h.List)
		vehicles.GET("/plate/:plate", h.GetByPlate)
		vehicles.GET("/:id", h.Get)
		vehicles.PUT("/:id/assign", middleware.RequireRoles(entities.ManagerRoles...), h.AssignTechnician)
		vehicles.PUT("/:id/status", h.UpdateStatus)
	}
}

func addAppointmentRoutes(rg *gin.RouterGroup, h *handlers.AppointmentHandler) {
	appointments := rg.Group(PathAppointments)
	{
		appointments.POST("", h.Create)
		appointments.GET("", h.List)
		appointments.GET("/:id", h.Get)
		appointments.PUT("/:id/status", h.UpdateStatus)
	}
}

func addInspectionRoutes(rg *gin.RouterGroup, h *handlers.InspectionHandler) {
	inspections := rg.Group(PathInspections)
	{
		inspections.POST("", h.Create)
		inspections.GET("/vehicle/:vehicle_id", h.ListByVehicle)
	}
}

func addQuoteRoutes(rg *gin.RouterGroup, h *handlers.QuoteHandler) {
	quotes := rg.Group(PathQuotes)
	{
		quotes.POST("", h.Create)
		quotes.GET("", h.List)
		quotes.GET("/:id", h.Get)
		quotes.PUT("/:id/approve", h.Approve)
	}
}

// Role checks for technicians on status changes live in the use case, which
// knows the order's assignee.
func addServiceOrderRoutes(rg *gin.RouterGroup, h *handlers.ServiceOrderHandler) {
	orders := rg.Group(PathServiceOrders)
	{
		orders.POST("", middleware.RequireRoles(entities.ManagerRoles...), h.Create)
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
		orders.PUT("/:id/status", h.UpdateStatus)
		orders.PUT("/:id/assign", middleware.RequireRoles(entities.ManagerRoles...), h.AssignTechnician)
	}
}

func addNotificationRoutes(rg *gin.RouterGroup, h *handlers.NotificationHandler) {
	notifications := rg.Group(PathNotifications)
	{
		notifications.GET("", h.List)
		notifications.GET("/unread-count", h.UnreadCount)
		notifications.PUT("/:id/read", h.MarkRead)
	}
}

func addDashboardRoutes(rg *gin.RouterGroup, h *handlers.DashboardHandler) {
	rg.GET(PathDashboard+"/stats", h.Stats)
}
