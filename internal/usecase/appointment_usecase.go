package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/internal/infrastructure/logger"
	"polarizados_ya/internal/infrastructure/messaging"
	"polarizados_ya/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrInvalidAppointmentID = errors.New("invalid appointment id")
	ErrInvalidDate          = errors.New("invalid appointment date")
	ErrInvalidTimeSlot      = errors.New("invalid time slot")
	ErrInvalidClient        = errors.New("client name and phone are required")
)

// IAppointmentUseCase exposes the booking calendar.
//
// Booking with a plate upserts the vehicle and sets it to agendado.
type IAppointmentUseCase interface {
	Create(ctx context.Context, actor entities.User, a entities.Appointment) (entities.Appointment, error)
	GetByID(ctx context.Context, id string) (entities.Appointment, error)
	List(ctx context.Context, date string) ([]entities.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status entities.ServiceStatus) (entities.Appointment, error)
}

type AppointmentUseCase struct {
	repo     interfaces.IAppointmentRepository
	vehicles interfaces.IVehicleRepository
	email    interfaces.IEmailSender
	now      func() time.Time
}

var _ IAppointmentUseCase = (*AppointmentUseCase)(nil)

func NewAppointmentUseCase(repo interfaces.IAppointmentRepository, vehicles interfaces.IVehicleRepository, email interfaces.IEmailSender) *AppointmentUseCase {
	return &AppointmentUseCase{repo: repo, vehicles: vehicles, email: email, now: time.Now}
}

func (u *AppointmentUseCase) Create(ctx context.Context, actor entities.User, a entities.Appointment) (entities.Appointment, error) {
	a.ClientName = strings.TrimSpace(a.ClientName)
	a.ClientPhone = strings.TrimSpace(a.ClientPhone)
	a.ClientEmail = strings.TrimSpace(a.ClientEmail)
	if a.ClientName == "" || a.ClientPhone == "" {
		return entities.Appointment{}, ErrInvalidClient
	}
	if _, err := time.Parse(entities.AppointmentDateLayout, a.Date); err != nil {
		return entities.Appointment{}, ErrInvalidDate
	}
	if !entities.ValidTimeSlot(a.TimeSlot) {
		return entities.Appointment{}, ErrInvalidTimeSlot
	}
	if err := entities.ValidateServices(a.Services); err != nil {
		return entities.Appointment{}, err
	}

	a.Plate = entities.NormalizePlate(a.Plate)
	if a.Plate != "" {
		vehicleID, err := u.upsertVehicle(ctx, actor, a)
		if err != nil {
			return entities.Appointment{}, err
		}
		a.VehicleID = vehicleID
	}

	a.ID = uuid.NewString()
	a.Status = entities.ServiceStatusAgendado
	a.CreatedAt = u.now().UTC()
	a.CreatedBy = actor.ID

	created, err := u.repo.Create(ctx, a)
	if err != nil {
		return entities.Appointment{}, err
	}
	logger.WithContext(ctx).Info("[appointment][usecase] appointment booked",
		zap.String("appointment_id", created.ID), zap.String("date", created.Date), zap.String("slot", created.TimeSlot))

	if created.ClientEmail != "" {
		body, err := messaging.RenderAppointmentConfirmation(messaging.AppointmentEmailData{
			ClientName: created.ClientName,
			Date:       created.Date,
			TimeSlot:   created.TimeSlot,
			Services:   serviceLabels(created.Services),
		})
		if err != nil {
			logger.WithContext(ctx).Error("[appointment][usecase] failed to render email", zap.Error(err))
		} else {
			notifyEmail(ctx, u.email, created.ClientEmail, messaging.SubjectAppointmentConfirmed, body)
		}
	}
	return created, nil
}

func (u *AppointmentUseCase) upsertVehicle(ctx context.Context, actor entities.User, a entities.Appointment) (string, error) {
	existing, err := u.vehicles.GetByPlate(ctx, a.Plate)
	if err != nil {
		return "", err
	}

	if existing.ID != "" {
		existing.Status = entities.VehicleStatusAgendado
		existing.ClientName = a.ClientName
		existing.ClientPhone = a.ClientPhone
		existing.ClientEmail = a.ClientEmail
		updated, err := u.vehicles.Update(ctx, existing)
		if err != nil {
			return "", err
		}
		if updated.ID == "" {
			return "", ErrVehicleNotFound
		}
		return updated.ID, nil
	}

	now := u.now().UTC()
	created, err := u.vehicles.Create(ctx, entities.Vehicle{
		ID:          uuid.NewString(),
		Plate:       a.Plate,
		Brand:       strings.TrimSpace(a.Brand),
		Model:       strings.TrimSpace(a.Model),
		Year:        now.Year(),
		ClientName:  a.ClientName,
		ClientPhone: a.ClientPhone,
		ClientEmail: a.ClientEmail,
		Status:      entities.VehicleStatusAgendado,
		CreatedAt:   now,
		CreatedBy:   actor.ID,
	})
	if err != nil {
		return "", err
	}
	return created.ID, nil
}

func (u *AppointmentUseCase) GetByID(ctx context.Context, id string) (entities.Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Appointment{}, ErrInvalidAppointmentID
	}
	a, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Appointment{}, err
	}
	if a.ID == "" {
		return entities.Appointment{}, ErrAppointmentNotFound
	}
	return a, nil
}

// List returns appointments sorted by date then time slot.
func (u *AppointmentUseCase) List(ctx context.Context, date string) ([]entities.Appointment, error) {
	date = strings.TrimSpace(date)
	if date != "" {
		if _, err := time.Parse(entities.AppointmentDateLayout, date); err != nil {
			return nil, ErrInvalidDate
		}
	}
	items, err := u.repo.List(ctx, date)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Date != items[j].Date {
			return items[i].Date < items[j].Date
		}
		return items[i].TimeSlot < items[j].TimeSlot
	})
	return items, nil
}

func (u *AppointmentUseCase) UpdateStatus(ctx context.Context, id string, status entities.ServiceStatus) (entities.Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Appointment{}, ErrInvalidAppointmentID
	}
	if !status.Valid() {
		return entities.Appointment{}, entities.ErrUnknownStatus
	}
	updated, err := u.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return entities.Appointment{}, err
	}
	if updated.ID == "" {
		return entities.Appointment{}, ErrAppointmentNotFound
	}
	return updated, nil
}

func serviceLabels(codes []entities.ServiceCode) []string {
	labels := make([]string, 0, len(codes))
	for _, c := range codes {
		if e, ok := entities.LookupService(c); ok {
			labels = append(labels, e.Label)
			continue
		}
		labels = append(labels, string(c))
	}
	return labels
}
