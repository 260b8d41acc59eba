package interfaces

import (
	"context"

	"polarizados_ya/internal/domain/entities"
)

// IInspectionRepository abstracts DynamoDB persistence for 360 inspections.
type IInspectionRepository interface {
	Create(ctx context.Context, i entities.Inspection) (entities.Inspection, error)
	ListByVehicleID(ctx context.Context, vehicleID string) ([]entities.Inspection, error)
}
