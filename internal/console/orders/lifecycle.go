package orders

import (
	"context"
	"errors"
	"strings"

	request "polarizados_ya/internal/adapter/http/dto/request"
	response "polarizados_ya/internal/adapter/http/dto/response"
	"polarizados_ya/internal/console/apiclient"
	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/internal/infrastructure/logger"

	"go.uber.org/zap"
)

var ErrNotAllowed = errors.New("your role cannot perform this action")

// Capabilities is what the lifecycle needs from the logged-in session.
type Capabilities interface {
	User() entities.User
	HasRole(roles ...entities.UserRole) bool
}

// API is the backend surface for service orders.
type API interface {
	CreateServiceOrder(ctx context.Context, in request.ServiceOrderRequest) (response.ServiceOrderResponse, error)
	ListServiceOrders(ctx context.Context, status, technicianID string) ([]response.ServiceOrderResponse, error)
	UpdateServiceOrderStatus(ctx context.Context, id, status string) error
	AssignServiceOrderTechnician(ctx context.Context, id, technicianID string) error
}

// Draft is a service order being filled in.
type Draft struct {
	VehicleID      string
	QuoteID        string
	AppointmentID  string
	Services       []entities.ServiceCode
	TechnicianID   string
	EstimatedHours *float64
	Notes          string
}

// Lifecycle applies the forward-only status pipeline and role rules on the console side.
type Lifecycle struct {
	caps Capabilities
	api  API
}

func NewLifecycle(caps Capabilities, api API) *Lifecycle {
	return &Lifecycle{caps: caps, api: api}
}

// NextStatus returns the status advance would move order to.
func NextStatus(order response.ServiceOrderResponse) (entities.ServiceStatus, error) {
	return entities.NextStatus(entities.ServiceStatus(order.Status))
}

// CanAdvance reports whether the advance action should be offered.
func CanAdvance(order response.ServiceOrderResponse) bool {
	_, err := NextStatus(order)
	return err == nil
}

func (l *Lifecycle) CanCreate() bool {
	return l.caps.HasRole(entities.ManagerRoles...)
}

func (l *Lifecycle) CanAssign() bool {
	return l.caps.HasRole(entities.ManagerRoles...)
}

// Create validates the draft locally and creates the order.
func (l *Lifecycle) Create(ctx context.Context, d Draft) (response.ServiceOrderResponse, error) {
	if !l.CanCreate() {
		return response.ServiceOrderResponse{}, ErrNotAllowed
	}
	if strings.TrimSpace(d.VehicleID) == "" {
		return response.ServiceOrderResponse{}, apiclient.NewValidationError("vehicle", "selecciona un vehículo")
	}
	if err := entities.ValidateServices(d.Services); err != nil {
		return response.ServiceOrderResponse{}, apiclient.WrapValidation("services", err)
	}
	if d.EstimatedHours != nil && *d.EstimatedHours < 0 {
		return response.ServiceOrderResponse{}, apiclient.NewValidationError("estimated_hours", "las horas estimadas no pueden ser negativas")
	}

	services := make([]string, len(d.Services))
	for i, s := range d.Services {
		services[i] = string(s)
	}
	return l.api.CreateServiceOrder(ctx, request.ServiceOrderRequest{
		VehicleID:            d.VehicleID,
		QuoteID:              d.QuoteID,
		AppointmentID:        d.AppointmentID,
		Services:             services,
		AssignedTechnicianID: d.TechnicianID,
		EstimatedHours:       d.EstimatedHours,
		Notes:                d.Notes,
	})
}

// List returns orders filtered by status. Technicians only see their own.
func (l *Lifecycle) List(ctx context.Context, status entities.ServiceStatus) ([]response.ServiceOrderResponse, error) {
	var technicianID string
	if u := l.caps.User(); u.Role == entities.UserRoleTecnico {
		technicianID = u.ID
	}
	return l.api.ListServiceOrders(ctx, string(status), technicianID)
}

// Advance moves order one step forward. order is only updated when the server accepts.
func (l *Lifecycle) Advance(ctx context.Context, order *response.ServiceOrderResponse) error {
	next, err := NextStatus(*order)
	if err != nil {
		return err
	}
	if err := l.api.UpdateServiceOrderStatus(ctx, order.ID, string(next)); err != nil {
		logger.WithContext(ctx).Warn("[console][orders] advance failed",
			zap.String("order_id", order.ID), zap.String("to", string(next)), zap.Error(err))
		return err
	}
	order.Status = string(next)
	return nil
}

// AssignTechnician sets the order's technician, replacing any previous one.
func (l *Lifecycle) AssignTechnician(ctx context.Context, order *response.ServiceOrderResponse, technician response.UserResponse) error {
	if !l.CanAssign() {
		return ErrNotAllowed
	}
	if technician.ID == "" {
		return apiclient.NewValidationError("technician", "selecciona un técnico")
	}
	if err := l.api.AssignServiceOrderTechnician(ctx, order.ID, technician.ID); err != nil {
		return err
	}
	order.AssignedTechnicianID = technician.ID
	order.AssignedTechnicianName = technician.Name
	return nil
}

// Partition buckets orders by status for display. Every pipeline status has a bucket.
func Partition(orders []response.ServiceOrderResponse) map[entities.ServiceStatus][]response.ServiceOrderResponse {
	out := make(map[entities.ServiceStatus][]response.ServiceOrderResponse, len(entities.ServiceStatuses))
	for _, s := range entities.ServiceStatuses {
		out[s] = []response.ServiceOrderResponse{}
	}
	for _, o := range orders {
		s := entities.ServiceStatus(o.Status)
		if _, ok := out[s]; ok {
			out[s] = append(out[s], o)
		}
	}
	return out
}
