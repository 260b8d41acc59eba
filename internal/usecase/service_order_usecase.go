package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/internal/infrastructure/logger"
	"polarizados_ya/internal/infrastructure/messaging"
	"polarizados_ya/internal/infrastructure/metrics"
	"polarizados_ya/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrServiceOrderNotFound  = errors.New("service order not found")
	ErrInvalidServiceOrderID = errors.New("invalid service order id")
	ErrInvalidEstimatedHours = errors.New("estimated hours must not be negative")
	ErrServiceOrderConflict  = errors.New("service order status changed concurrently")
)

// ServiceOrderInput is the order creation command.
type ServiceOrderInput struct {
	VehicleID            string
	QuoteID              string
	AppointmentID        string
	Services             []entities.ServiceCode
	AssignedTechnicianID string
	EstimatedHours       *float64
	Notes                string
}

// ServiceOrderDetails is an order enriched with its vehicle, when the vehicle still exists.
type ServiceOrderDetails struct {
	Order   entities.ServiceOrder
	Vehicle *entities.Vehicle
}

// IServiceOrderUseCase exposes the service order pipeline.
//
//   - Create / AssignTechnician: admin and asesor only
//   - UpdateStatus: exactly one step forward; a tecnico only on orders assigned to them
//   - List / Get: a tecnico only sees orders assigned to them
type IServiceOrderUseCase interface {
	Create(ctx context.Context, actor entities.User, in ServiceOrderInput) (entities.ServiceOrder, error)
	List(ctx context.Context, actor entities.User, filter interfaces.ServiceOrderFilter) ([]ServiceOrderDetails, error)
	Get(ctx context.Context, actor entities.User, id string) (ServiceOrderDetails, error)
	UpdateStatus(ctx context.Context, actor entities.User, id string, target entities.ServiceStatus) (entities.ServiceOrder, error)
	AssignTechnician(ctx context.Context, actor entities.User, id, technicianID string) (entities.ServiceOrder, error)
}

type ServiceOrderUseCase struct {
	repo          interfaces.IServiceOrderRepository
	vehicles      interfaces.IVehicleRepository
	users         interfaces.IUserRepository
	notifications interfaces.INotificationRepository
	email         interfaces.IEmailSender
	whatsapp      interfaces.IWhatsAppSender
	now           func() time.Time
}

var _ IServiceOrderUseCase = (*ServiceOrderUseCase)(nil)

func NewServiceOrderUseCase(
	repo interfaces.IServiceOrderRepository,
	vehicles interfaces.IVehicleRepository,
	users interfaces.IUserRepository,
	notifications interfaces.INotificationRepository,
	email interfaces.IEmailSender,
	whatsapp interfaces.IWhatsAppSender,
) *ServiceOrderUseCase {
	return &ServiceOrderUseCase{
		repo:          repo,
		vehicles:      vehicles,
		users:         users,
		notifications: notifications,
		email:         email,
		whatsapp:      whatsapp,
		now:           time.Now,
	}
}

func (u *ServiceOrderUseCase) Create(ctx context.Context, actor entities.User, in ServiceOrderInput) (entities.ServiceOrder, error) {
	if !entities.HasRole(actor, entities.ManagerRoles...) {
		return entities.ServiceOrder{}, ErrForbidden
	}
	if err := entities.ValidateServices(in.Services); err != nil {
		return entities.ServiceOrder{}, err
	}
	if in.EstimatedHours != nil && *in.EstimatedHours < 0 {
		return entities.ServiceOrder{}, ErrInvalidEstimatedHours
	}
	vehicle, err := loadVehicle(ctx, u.vehicles, in.VehicleID)
	if err != nil {
		return entities.ServiceOrder{}, err
	}

	var tech entities.User
	if strings.TrimSpace(in.AssignedTechnicianID) != "" {
		if tech, err = technician(ctx, u.users, in.AssignedTechnicianID); err != nil {
			return entities.ServiceOrder{}, err
		}
	}

	order := entities.ServiceOrder{
		ID:                     uuid.NewString(),
		VehicleID:              vehicle.ID,
		QuoteID:                strings.TrimSpace(in.QuoteID),
		AppointmentID:          strings.TrimSpace(in.AppointmentID),
		Services:               in.Services,
		Status:                 entities.ServiceStatusAgendado,
		AssignedTechnicianID:   tech.ID,
		AssignedTechnicianName: tech.Name,
		EstimatedHours:         in.EstimatedHours,
		Notes:                  strings.TrimSpace(in.Notes),
		CreatedAt:              u.now().UTC(),
		CreatedBy:              actor.ID,
	}
	created, err := u.repo.Create(ctx, order)
	if err != nil {
		return entities.ServiceOrder{}, err
	}

	log := logger.WithContext(ctx)
	vehicle.CurrentServiceOrderID = created.ID
	if _, err := u.vehicles.Update(ctx, vehicle); err != nil {
		log.Warn("[service_order][usecase] failed to link order to vehicle",
			zap.String("order_id", created.ID), zap.String("vehicle_id", vehicle.ID), zap.Error(err))
	}

	if tech.ID != "" {
		notifyInternal(ctx, u.notifications, tech.ID,
			"Nueva Orden de Trabajo Asignada",
			fmt.Sprintf("Se te ha asignado una nueva orden de servicio #%s", entities.ShortID(created.ID)),
			"service_order", created.ID)
	}

	log.Info("[service_order][usecase] order created",
		zap.String("order_id", created.ID), zap.String("vehicle_id", created.VehicleID))
	return created, nil
}

// List returns orders newest first, each enriched with its vehicle.
func (u *ServiceOrderUseCase) List(ctx context.Context, actor entities.User, filter interfaces.ServiceOrderFilter) ([]ServiceOrderDetails, error) {
	if actor.ID == "" {
		return nil, ErrUnauthenticated
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, entities.ErrUnknownStatus
	}
	filter.TechnicianID = strings.TrimSpace(filter.TechnicianID)
	if actor.Role == entities.UserRoleTecnico {
		filter.TechnicianID = actor.ID
	}

	orders, err := u.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })

	cache := make(map[string]*entities.Vehicle)
	out := make([]ServiceOrderDetails, 0, len(orders))
	for _, o := range orders {
		v, ok := cache[o.VehicleID]
		if !ok {
			if v, err = u.vehicleOf(ctx, o); err != nil {
				return nil, err
			}
			cache[o.VehicleID] = v
		}
		out = append(out, ServiceOrderDetails{Order: o, Vehicle: v})
	}
	return out, nil
}

func (u *ServiceOrderUseCase) Get(ctx context.Context, actor entities.User, id string) (ServiceOrderDetails, error) {
	order, err := u.load(ctx, id)
	if err != nil {
		return ServiceOrderDetails{}, err
	}
	if !canWork(actor, order) {
		return ServiceOrderDetails{}, ErrForbidden
	}
	v, err := u.vehicleOf(ctx, order)
	if err != nil {
		return ServiceOrderDetails{}, err
	}
	return ServiceOrderDetails{Order: order, Vehicle: v}, nil
}

// UpdateStatus accepts only the next pipeline status. Reaching terminado notifies the client.
func (u *ServiceOrderUseCase) UpdateStatus(ctx context.Context, actor entities.User, id string, target entities.ServiceStatus) (entities.ServiceOrder, error) {
	order, err := u.load(ctx, id)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if !canWork(actor, order) {
		return entities.ServiceOrder{}, ErrForbidden
	}
	if err := entities.ValidateTransition(order.Status, target); err != nil {
		return entities.ServiceOrder{}, err
	}

	updated, err := u.repo.UpdateStatus(ctx, order.ID, order.Status, target, u.now().UTC())
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if updated.ID == "" {
		return entities.ServiceOrder{}, ErrServiceOrderConflict
	}
	metrics.RecordOrderTransition(string(target))
	logger.WithContext(ctx).Info("[service_order][usecase] status advanced",
		zap.String("order_id", updated.ID),
		zap.String("from", string(order.Status)),
		zap.String("to", string(target)),
		zap.String("by", actor.ID))

	if target == entities.ServiceStatusTerminado {
		u.notifyCompletion(ctx, updated)
	}
	return updated, nil
}

func (u *ServiceOrderUseCase) AssignTechnician(ctx context.Context, actor entities.User, id, technicianID string) (entities.ServiceOrder, error) {
	if !entities.HasRole(actor, entities.ManagerRoles...) {
		return entities.ServiceOrder{}, ErrForbidden
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.ServiceOrder{}, ErrInvalidServiceOrderID
	}
	tech, err := technician(ctx, u.users, technicianID)
	if err != nil {
		return entities.ServiceOrder{}, err
	}

	updated, err := u.repo.AssignTechnician(ctx, id, tech.ID, tech.Name)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if updated.ID == "" {
		return entities.ServiceOrder{}, ErrServiceOrderNotFound
	}

	notifyInternal(ctx, u.notifications, tech.ID,
		"Nueva Orden Asignada",
		fmt.Sprintf("Se te ha asignado la orden #%s", entities.ShortID(updated.ID)),
		"service_order", updated.ID)
	return updated, nil
}

func (u *ServiceOrderUseCase) notifyCompletion(ctx context.Context, order entities.ServiceOrder) {
	v, err := u.vehicleOf(ctx, order)
	if err != nil || v == nil {
		logger.WithContext(ctx).Warn("[service_order][usecase] completion notice skipped: vehicle unavailable",
			zap.String("order_id", order.ID), zap.Error(err))
		return
	}

	if v.ClientEmail != "" {
		body, err := messaging.RenderVehicleReady(messaging.VehicleReadyEmailData{
			ClientName: v.ClientName,
			Brand:      v.Brand,
			Model:      v.Model,
			Plate:      v.Plate,
		})
		if err != nil {
			logger.WithContext(ctx).Error("[service_order][usecase] failed to render email", zap.Error(err))
		} else {
			notifyEmail(ctx, u.email, v.ClientEmail, messaging.SubjectVehicleReady, body)
		}
	}
	notifyWhatsApp(ctx, u.whatsapp, v.ClientPhone, fmt.Sprintf(
		"Hola %s, el servicio de tu vehículo %s %s (%s) ha sido completado. ¡Puedes pasar a recogerlo! - PolarizadosYA!",
		v.ClientName, v.Brand, v.Model, v.Plate))
}

func (u *ServiceOrderUseCase) load(ctx context.Context, id string) (entities.ServiceOrder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.ServiceOrder{}, ErrInvalidServiceOrderID
	}
	order, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if order.ID == "" {
		return entities.ServiceOrder{}, ErrServiceOrderNotFound
	}
	return order, nil
}

func (u *ServiceOrderUseCase) vehicleOf(ctx context.Context, order entities.ServiceOrder) (*entities.Vehicle, error) {
	v, err := u.vehicles.GetByID(ctx, order.VehicleID)
	if err != nil {
		return nil, err
	}
	if v.ID == "" {
		return nil, nil
	}
	return &v, nil
}

// canWork reports whether actor may view or advance order.
func canWork(actor entities.User, order entities.ServiceOrder) bool {
	if entities.HasRole(actor, entities.ManagerRoles...) {
		return true
	}
	return entities.HasRole(actor, entities.UserRoleTecnico) && order.AssignedTechnicianID == actor.ID
}
