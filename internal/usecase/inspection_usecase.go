package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/internal/infrastructure/logger"
	"polarizados_ya/internal/infrastructure/metrics"
	"polarizados_ya/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxInspectionPhotos bounds the photos accepted with one inspection.
const MaxInspectionPhotos = 10

var ErrTooManyPhotos = errors.New("too many photos")

// InspectionInput is the 360 inspection submission. Photos are base64 JPEG data URLs.
type InspectionInput struct {
	VehicleID      string
	ServiceOrderID string
	Items          []entities.InspectionItem
	GeneralNotes   string
	Photos         []string
}

// IInspectionUseCase records check-in inspections.
type IInspectionUseCase interface {
	Create(ctx context.Context, actor entities.User, in InspectionInput) (entities.Inspection, error)
	ListByVehicle(ctx context.Context, vehicleID string) ([]entities.Inspection, error)
}

type InspectionUseCase struct {
	repo     interfaces.IInspectionRepository
	vehicles interfaces.IVehicleRepository
	photos   interfaces.IPhotoStore
	policy   entities.DamagePolicy
}

var _ IInspectionUseCase = (*InspectionUseCase)(nil)

func NewInspectionUseCase(repo interfaces.IInspectionRepository, vehicles interfaces.IVehicleRepository, photos interfaces.IPhotoStore, policy entities.DamagePolicy) *InspectionUseCase {
	return &InspectionUseCase{repo: repo, vehicles: vehicles, photos: photos, policy: policy}
}

// Create validates the full checklist, stores the photos and moves an agendado
// vehicle to ingresado. Vehicles in any other status are left untouched. Photos
// are removed again when the inspection cannot be saved. A failed status change
// is logged but does not fail the call, since the inspection already exists.
func (u *InspectionUseCase) Create(ctx context.Context, actor entities.User, in InspectionInput) (entities.Inspection, error) {
	if err := entities.ValidateInspectionItems(in.Items, u.policy); err != nil {
		return entities.Inspection{}, err
	}
	if len(in.Photos) > MaxInspectionPhotos {
		return entities.Inspection{}, ErrTooManyPhotos
	}
	vehicle, err := loadVehicle(ctx, u.vehicles, in.VehicleID)
	if err != nil {
		return entities.Inspection{}, err
	}

	id := uuid.NewString()
	keys := []string{}
	if len(in.Photos) > 0 {
		keys, err = u.photos.SaveInspectionPhotos(ctx, id, in.Photos)
		if err != nil {
			return entities.Inspection{}, err
		}
	}

	created, err := u.repo.Create(ctx, entities.Inspection{
		ID:             id,
		VehicleID:      vehicle.ID,
		ServiceOrderID: strings.TrimSpace(in.ServiceOrderID),
		Items:          in.Items,
		GeneralNotes:   strings.TrimSpace(in.GeneralNotes),
		Photos:         keys,
		CreatedAt:      time.Now().UTC(),
		CreatedBy:      actor.ID,
	})
	if err != nil {
		if len(keys) > 0 {
			if derr := u.photos.DeleteInspectionPhotos(ctx, keys); derr != nil {
				logger.WithContext(ctx).Warn("[inspection][usecase] orphan photos left behind",
					zap.String("inspection_id", id), zap.Strings("keys", keys), zap.Error(derr))
			}
		}
		return entities.Inspection{}, err
	}
	metrics.RecordInspection(len(keys))

	if vehicle.Status == entities.VehicleStatusAgendado {
		if _, err := u.vehicles.UpdateStatus(ctx, vehicle.ID, entities.VehicleStatusIngresado); err != nil {
			logger.WithContext(ctx).Warn("[inspection][usecase] vehicle status not updated",
				zap.String("inspection_id", created.ID),
				zap.String("vehicle_id", vehicle.ID),
				zap.Error(err))
		}
	}

	logger.WithContext(ctx).Info("[inspection][usecase] inspection recorded",
		zap.String("inspection_id", created.ID),
		zap.String("vehicle_id", vehicle.ID),
		zap.Int("photos", len(keys)))
	return created, nil
}

func (u *InspectionUseCase) ListByVehicle(ctx context.Context, vehicleID string) ([]entities.Inspection, error) {
	vehicleID = strings.TrimSpace(vehicleID)
	if vehicleID == "" {
		return nil, ErrInvalidVehicleID
	}
	return u.repo.ListByVehicleID(ctx, vehicleID)
}
