package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"polarizados_ya/internal/domain/entities"
	mock_interfaces "polarizados_ya/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestDashboardUseCase_Stats(t *testing.T) {
	t.Run("aggregates counters for today", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		appointments := mock_interfaces.NewMockIAppointmentRepository(ctrl)
		orders := mock_interfaces.NewMockIServiceOrderRepository(ctrl)
		vehicles := mock_interfaces.NewMockIVehicleRepository(ctrl)
		quotes := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewDashboardUseCase(appointments, orders, vehicles, quotes)
		uc.now = func() time.Time { return time.Date(2026, 5, 4, 23, 0, 0, 0, time.UTC) }

		orders.EXPECT().CountByStatus(gomock.Any(), entities.ServiceStatusAgendado).Return(2, nil)
		orders.EXPECT().CountByStatus(gomock.Any(), entities.ServiceStatusEnProceso).Return(1, nil)
		orders.EXPECT().CountByStatus(gomock.Any(), entities.ServiceStatusEnRevision).Return(1, nil)
		orders.EXPECT().CountByStatus(gomock.Any(), entities.ServiceStatusTerminado).Return(5, nil)
		appointments.EXPECT().CountByDate(gomock.Any(), "2026-05-04").Return(3, nil)
		vehicles.EXPECT().Count(gomock.Any()).Return(10, nil)
		quotes.EXPECT().CountByStatus(gomock.Any(), entities.QuoteStatusPending).Return(4, nil)
		orders.EXPECT().CountCompletedOn(gomock.Any(), "2026-05-04").Return(1, nil)

		stats, err := uc.Stats(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stats.TodayAppointments != 3 || stats.TotalActiveOrders != 4 || stats.OrdersByStatus[entities.ServiceStatusTerminado] != 5 {
			t.Fatalf("unexpected stats: %+v", stats)
		}
		if stats.TotalVehicles != 10 || stats.PendingQuotes != 4 || stats.CompletedToday != 1 {
			t.Fatalf("unexpected stats: %+v", stats)
		}
	})

	t.Run("repository error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIServiceOrderRepository(ctrl)
		uc := NewDashboardUseCase(nil, orders, nil, nil)

		orders.EXPECT().CountByStatus(gomock.Any(), entities.ServiceStatusAgendado).Return(0, errors.New("db"))

		if _, err := uc.Stats(context.Background()); err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})
}
