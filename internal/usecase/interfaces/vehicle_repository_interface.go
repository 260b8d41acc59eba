package interfaces

import (
	"context"

	"polarizados_ya/internal/domain/entities"
)

// IVehicleRepository abstracts DynamoDB persistence for Vehicle.
//
// Plates are stored normalised (upper case), so GetByPlate expects a normalised plate.
type IVehicleRepository interface {
	Create(ctx context.Context, v entities.Vehicle) (entities.Vehicle, error)
	GetByID(ctx context.Context, id string) (entities.Vehicle, error)
	GetByPlate(ctx context.Context, plate string) (entities.Vehicle, error)
	// List returns every vehicle, or only those in status when it is not empty.
	List(ctx context.Context, status entities.VehicleStatus) ([]entities.Vehicle, error)
	Update(ctx context.Context, v entities.Vehicle) (entities.Vehicle, error)
	UpdateStatus(ctx context.Context, id string, status entities.VehicleStatus) (entities.Vehicle, error)
	Count(ctx context.Context) (int, error)
}
