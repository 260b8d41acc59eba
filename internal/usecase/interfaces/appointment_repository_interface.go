package interfaces

import (
	"context"

	"polarizados_ya/internal/domain/entities"
)

// IAppointmentRepository abstracts DynamoDB persistence for Appointment.
type IAppointmentRepository interface {
	Create(ctx context.Context, a entities.Appointment) (entities.Appointment, error)
	GetByID(ctx context.Context, id string) (entities.Appointment, error)
	// List returns every appointment, or only those on date (YYYY-MM-DD) when it is not empty.
	List(ctx context.Context, date string) ([]entities.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status entities.ServiceStatus) (entities.Appointment, error)
	CountByDate(ctx context.Context, date string) (int, error)
}
