package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/internal/infrastructure/logger"
	"polarizados_ya/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrVehicleNotFound      = errors.New("vehicle not found")
	ErrVehicleAlreadyExists = errors.New("vehicle plate already registered")
	ErrInvalidVehicleID     = errors.New("invalid vehicle id")
	ErrInvalidPlate         = errors.New("invalid plate")
	ErrInvalidVehicle       = errors.New("invalid vehicle")
	ErrInvalidVehicleStatus = errors.New("invalid vehicle status")
)

// IVehicleUseCase exposes the vehicle registry.
type IVehicleUseCase interface {
	Create(ctx context.Context, actor entities.User, v entities.Vehicle) (entities.Vehicle, error)
	GetByID(ctx context.Context, id string) (entities.Vehicle, error)
	GetByPlate(ctx context.Context, plate string) (entities.Vehicle, error)
	List(ctx context.Context, status entities.VehicleStatus) ([]entities.Vehicle, error)
	AssignTechnician(ctx context.Context, actor entities.User, vehicleID, technicianID string) (entities.Vehicle, error)
	UpdateStatus(ctx context.Context, id string, status entities.VehicleStatus) (entities.Vehicle, error)
}

type VehicleUseCase struct {
	repo          interfaces.IVehicleRepository
	users         interfaces.IUserRepository
	notifications interfaces.INotificationRepository
}

var _ IVehicleUseCase = (*VehicleUseCase)(nil)

func NewVehicleUseCase(repo interfaces.IVehicleRepository, users interfaces.IUserRepository, notifications interfaces.INotificationRepository) *VehicleUseCase {
	return &VehicleUseCase{repo: repo, users: users, notifications: notifications}
}

func (u *VehicleUseCase) Create(ctx context.Context, actor entities.User, v entities.Vehicle) (entities.Vehicle, error) {
	v.Plate = entities.NormalizePlate(v.Plate)
	if v.Plate == "" {
		return entities.Vehicle{}, ErrInvalidPlate
	}
	v.ClientName = strings.TrimSpace(v.ClientName)
	v.ClientPhone = strings.TrimSpace(v.ClientPhone)
	if v.ClientName == "" || v.ClientPhone == "" || v.Year < 0 {
		return entities.Vehicle{}, ErrInvalidVehicle
	}
	if v.Status != "" && !v.Status.Valid() {
		return entities.Vehicle{}, ErrInvalidVehicleStatus
	}

	existing, err := u.repo.GetByPlate(ctx, v.Plate)
	if err != nil {
		return entities.Vehicle{}, err
	}
	if existing.ID != "" {
		return entities.Vehicle{}, ErrVehicleAlreadyExists
	}

	v.ID = uuid.NewString()
	v.AssignedTechnicianID = ""
	v.AssignedTechnicianName = ""
	v.CurrentServiceOrderID = ""
	v.CreatedAt = time.Now().UTC()
	v.CreatedBy = actor.ID

	created, err := u.repo.Create(ctx, v)
	if err != nil {
		return entities.Vehicle{}, err
	}
	logger.WithContext(ctx).Info("[vehicle][usecase] vehicle registered",
		zap.String("vehicle_id", created.ID), zap.String("plate", created.Plate))
	return created, nil
}

func (u *VehicleUseCase) GetByID(ctx context.Context, id string) (entities.Vehicle, error) {
	return loadVehicle(ctx, u.repo, id)
}

func (u *VehicleUseCase) GetByPlate(ctx context.Context, plate string) (entities.Vehicle, error) {
	plate = entities.NormalizePlate(plate)
	if plate == "" {
		return entities.Vehicle{}, ErrInvalidPlate
	}
	v, err := u.repo.GetByPlate(ctx, plate)
	if err != nil {
		return entities.Vehicle{}, err
	}
	if v.ID == "" {
		return entities.Vehicle{}, ErrVehicleNotFound
	}
	return v, nil
}

func (u *VehicleUseCase) List(ctx context.Context, status entities.VehicleStatus) ([]entities.Vehicle, error) {
	if status != "" && !status.Valid() {
		return nil, ErrInvalidVehicleStatus
	}
	return u.repo.List(ctx, status)
}

// AssignTechnician hands the car to a technician: the vehicle moves to con_tecnico
// and the technician receives an internal notification.
func (u *VehicleUseCase) AssignTechnician(ctx context.Context, actor entities.User, vehicleID, technicianID string) (entities.Vehicle, error) {
	if !entities.HasRole(actor, entities.ManagerRoles...) {
		return entities.Vehicle{}, ErrForbidden
	}
	v, err := loadVehicle(ctx, u.repo, vehicleID)
	if err != nil {
		return entities.Vehicle{}, err
	}
	tech, err := technician(ctx, u.users, technicianID)
	if err != nil {
		return entities.Vehicle{}, err
	}

	v.AssignedTechnicianID = tech.ID
	v.AssignedTechnicianName = tech.Name
	v.Status = entities.VehicleStatusConTecnico
	updated, err := u.repo.Update(ctx, v)
	if err != nil {
		return entities.Vehicle{}, err
	}
	if updated.ID == "" {
		return entities.Vehicle{}, ErrVehicleNotFound
	}

	notifyInternal(ctx, u.notifications, tech.ID,
		"Vehículo Asignado",
		"Se te ha asignado el vehículo "+updated.Plate,
		"vehicle", updated.ID)
	return updated, nil
}

func (u *VehicleUseCase) UpdateStatus(ctx context.Context, id string, status entities.VehicleStatus) (entities.Vehicle, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Vehicle{}, ErrInvalidVehicleID
	}
	if !status.Valid() {
		return entities.Vehicle{}, ErrInvalidVehicleStatus
	}
	updated, err := u.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return entities.Vehicle{}, err
	}
	if updated.ID == "" {
		return entities.Vehicle{}, ErrVehicleNotFound
	}
	return updated, nil
}

func loadVehicle(ctx context.Context, repo interfaces.IVehicleRepository, id string) (entities.Vehicle, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Vehicle{}, ErrInvalidVehicleID
	}
	v, err := repo.GetByID(ctx, id)
	if err != nil {
		return entities.Vehicle{}, err
	}
	if v.ID == "" {
		return entities.Vehicle{}, ErrVehicleNotFound
	}
	return v, nil
}
