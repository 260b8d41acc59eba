package usecase

import (
	"context"
	"time"

	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/internal/usecase/interfaces"
)

// IDashboardUseCase aggregates the home screen counters.
type IDashboardUseCase interface {
	Stats(ctx context.Context) (entities.DashboardStats, error)
}

type DashboardUseCase struct {
	appointments interfaces.IAppointmentRepository
	orders       interfaces.IServiceOrderRepository
	vehicles     interfaces.IVehicleRepository
	quotes       interfaces.IQuoteRepository
	now          func() time.Time
}

var _ IDashboardUseCase = (*DashboardUseCase)(nil)

func NewDashboardUseCase(
	appointments interfaces.IAppointmentRepository,
	orders interfaces.IServiceOrderRepository,
	vehicles interfaces.IVehicleRepository,
	quotes interfaces.IQuoteRepository,
) *DashboardUseCase {
	return &DashboardUseCase{appointments: appointments, orders: orders, vehicles: vehicles, quotes: quotes, now: time.Now}
}

// Stats computes today's counters. "Today" is the current UTC calendar day.
func (u *DashboardUseCase) Stats(ctx context.Context) (entities.DashboardStats, error) {
	today := u.now().UTC().Format(entities.AppointmentDateLayout)

	byStatus := make(map[entities.ServiceStatus]int, len(entities.ServiceStatuses))
	for _, s := range entities.ServiceStatuses {
		n, err := u.orders.CountByStatus(ctx, s)
		if err != nil {
			return entities.DashboardStats{}, err
		}
		byStatus[s] = n
	}
	stats := entities.NewDashboardStats(byStatus)

	var err error
	if stats.TodayAppointments, err = u.appointments.CountByDate(ctx, today); err != nil {
		return entities.DashboardStats{}, err
	}
	if stats.TotalVehicles, err = u.vehicles.Count(ctx); err != nil {
		return entities.DashboardStats{}, err
	}
	if stats.PendingQuotes, err = u.quotes.CountByStatus(ctx, entities.QuoteStatusPending); err != nil {
		return entities.DashboardStats{}, err
	}
	if stats.CompletedToday, err = u.orders.CountCompletedOn(ctx, today); err != nil {
		return entities.DashboardStats{}, err
	}
	return stats, nil
}
