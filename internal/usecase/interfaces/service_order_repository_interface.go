package interfaces

import (
	"context"
	"time"

	"polarizados_ya/internal/domain/entities"
)

// ServiceOrderFilter narrows List; empty fields do not filter.
type ServiceOrderFilter struct {
	Status       entities.ServiceStatus
	TechnicianID string
}

// IServiceOrderRepository abstracts DynamoDB persistence for ServiceOrder.
type IServiceOrderRepository interface {
	Create(ctx context.Context, o entities.ServiceOrder) (entities.ServiceOrder, error)
	GetByID(ctx context.Context, id string) (entities.ServiceOrder, error)
	List(ctx context.Context, filter ServiceOrderFilter) ([]entities.ServiceOrder, error)
	// UpdateStatus moves the order from -> to, stamping started_at or completed_at as appropriate.
	// It returns the zero-value order when id does not exist or is no longer in from.
	UpdateStatus(ctx context.Context, id string, from, to entities.ServiceStatus, at time.Time) (entities.ServiceOrder, error)
	AssignTechnician(ctx context.Context, id, technicianID, technicianName string) (entities.ServiceOrder, error)
	CountByStatus(ctx context.Context, status entities.ServiceStatus) (int, error)
	// CountCompletedOn counts orders whose completed_at falls on day (YYYY-MM-DD, UTC).
	CountCompletedOn(ctx context.Context, day string) (int, error)
}
