package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/internal/usecase/interfaces"
)

// Repositories bundles one in-memory repository per aggregate.
type Repositories struct {
	Users         *UserRepository
	Vehicles      *VehicleRepository
	Appointments  *AppointmentRepository
	Inspections   *InspectionRepository
	Quotes        *QuoteRepository
	ServiceOrders *ServiceOrderRepository
	Notifications *NotificationRepository
}

func NewRepositories() *Repositories {
	return &Repositories{
		Users:         &UserRepository{t: newTable[entities.User]()},
		Vehicles:      &VehicleRepository{t: newTable[entities.Vehicle]()},
		Appointments:  &AppointmentRepository{t: newTable[entities.Appointment]()},
		Inspections:   &InspectionRepository{t: newTable[entities.Inspection]()},
		Quotes:        &QuoteRepository{t: newTable[entities.Quote]()},
		ServiceOrders: &ServiceOrderRepository{t: newTable[entities.ServiceOrder]()},
		Notifications: &NotificationRepository{t: newTable[entities.Notification]()},
	}
}

var (
	_ interfaces.IUserRepository         = (*UserRepository)(nil)
	_ interfaces.IVehicleRepository      = (*VehicleRepository)(nil)
	_ interfaces.IAppointmentRepository  = (*AppointmentRepository)(nil)
	_ interfaces.IInspectionRepository   = (*InspectionRepository)(nil)
	_ interfaces.IQuoteRepository        = (*QuoteRepository)(nil)
	_ interfaces.IServiceOrderRepository = (*ServiceOrderRepository)(nil)
	_ interfaces.INotificationRepository = (*NotificationRepository)(nil)
)

type UserRepository struct{ t *table[entities.User] }

func (r *UserRepository) Create(_ context.Context, u entities.User) (entities.User, error) {
	return create(r.t, u.ID, u)
}

func (r *UserRepository) GetByID(_ context.Context, id string) (entities.User, error) {
	u, _ := r.t.get(id)
	return u, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (entities.User, error) {
	found := r.t.filter(func(u entities.User) bool { return u.Email == email })
	if len(found) == 0 {
		return entities.User{}, nil
	}
	return found[0], nil
}

func (r *UserRepository) List(_ context.Context) ([]entities.User, error) {
	return r.t.filter(nil), nil
}

func (r *UserRepository) ListByRole(_ context.Context, role entities.UserRole) ([]entities.User, error) {
	return r.t.filter(func(u entities.User) bool { return u.Role == role }), nil
}

func (r *UserRepository) UpdateRole(_ context.Context, id string, role entities.UserRole) (entities.User, error) {
	u, _ := r.t.update(id, func(u *entities.User) bool {
		u.Role = role
		return true
	})
	return u, nil
}

type VehicleRepository struct{ t *table[entities.Vehicle] }

func (r *VehicleRepository) Create(_ context.Context, v entities.Vehicle) (entities.Vehicle, error) {
	return create(r.t, v.ID, v)
}

func (r *VehicleRepository) GetByID(_ context.Context, id string) (entities.Vehicle, error) {
	v, _ := r.t.get(id)
	return v, nil
}

func (r *VehicleRepository) GetByPlate(_ context.Context, plate string) (entities.Vehicle, error) {
	found := r.t.filter(func(v entities.Vehicle) bool { return v.Plate == plate })
	if len(found) == 0 {
		return entities.Vehicle{}, nil
	}
	return found[0], nil
}

func (r *VehicleRepository) List(_ context.Context, status entities.VehicleStatus) ([]entities.Vehicle, error) {
	return r.t.filter(func(v entities.Vehicle) bool { return status == "" || v.Status == status }), nil
}

// Update replaces an existing vehicle. A missing id yields the zero value.
func (r *VehicleRepository) Update(_ context.Context, v entities.Vehicle) (entities.Vehicle, error) {
	out, _ := r.t.update(v.ID, func(cur *entities.Vehicle) bool {
		*cur = v
		return true
	})
	return out, nil
}

func (r *VehicleRepository) UpdateStatus(_ context.Context, id string, status entities.VehicleStatus) (entities.Vehicle, error) {
	v, _ := r.t.update(id, func(v *entities.Vehicle) bool {
		v.Status = status
		return true
	})
	return v, nil
}

func (r *VehicleRepository) Count(_ context.Context) (int, error) {
	return r.t.count(nil), nil
}

type AppointmentRepository struct{ t *table[entities.Appointment] }

func (r *AppointmentRepository) Create(_ context.Context, a entities.Appointment) (entities.Appointment, error) {
	return create(r.t, a.ID, a)
}

func (r *AppointmentRepository) GetByID(_ context.Context, id string) (entities.Appointment, error) {
	a, _ := r.t.get(id)
	return a, nil
}

func (r *AppointmentRepository) List(_ context.Context, date string) ([]entities.Appointment, error) {
	return r.t.filter(func(a entities.Appointment) bool { return date == "" || a.Date == date }), nil
}

func (r *AppointmentRepository) UpdateStatus(_ context.Context, id string, status entities.ServiceStatus) (entities.Appointment, error) {
	a, _ := r.t.update(id, func(a *entities.Appointment) bool {
		a.Status = status
		return true
	})
	return a, nil
}

func (r *AppointmentRepository) CountByDate(_ context.Context, date string) (int, error) {
	return r.t.count(func(a entities.Appointment) bool { return a.Date == date }), nil
}

type InspectionRepository struct{ t *table[entities.Inspection] }

func (r *InspectionRepository) Create(_ context.Context, i entities.Inspection) (entities.Inspection, error) {
	return create(r.t, i.ID, i)
}

func (r *InspectionRepository) ListByVehicleID(_ context.Context, vehicleID string) ([]entities.Inspection, error) {
	return r.t.filter(func(i entities.Inspection) bool { return i.VehicleID == vehicleID }), nil
}

type QuoteRepository struct{ t *table[entities.Quote] }

func (r *QuoteRepository) Create(_ context.Context, q entities.Quote) (entities.Quote, error) {
	return create(r.t, q.ID, q)
}

func (r *QuoteRepository) GetByID(_ context.Context, id string) (entities.Quote, error) {
	q, _ := r.t.get(id)
	return q, nil
}

func (r *QuoteRepository) List(_ context.Context) ([]entities.Quote, error) {
	return r.t.filter(nil), nil
}

// Approve only writes while the quote is still pending.
func (r *QuoteRepository) Approve(_ context.Context, id string, approvedAt time.Time, signatureURL, cedulaPhotoURL string) (entities.Quote, error) {
	q, _ := r.t.update(id, func(q *entities.Quote) bool {
		if q.Status != entities.QuoteStatusPending {
			return false
		}
		q.Status = entities.QuoteStatusApproved
		q.ApprovedAt = &approvedAt
		if signatureURL != "" {
			q.SignatureURL = signatureURL
		}
		if cedulaPhotoURL != "" {
			q.CedulaPhotoURL = cedulaPhotoURL
		}
		return true
	})
	return q, nil
}

func (r *QuoteRepository) CountByStatus(_ context.Context, status entities.QuoteStatus) (int, error) {
	return r.t.count(func(q entities.Quote) bool { return q.Status == status }), nil
}

type ServiceOrderRepository struct{ t *table[entities.ServiceOrder] }

func (r *ServiceOrderRepository) Create(_ context.Context, o entities.ServiceOrder) (entities.ServiceOrder, error) {
	return create(r.t, o.ID, o)
}

func (r *ServiceOrderRepository) GetByID(_ context.Context, id string) (entities.ServiceOrder, error) {
	o, _ := r.t.get(id)
	return o, nil
}

func (r *ServiceOrderRepository) List(_ context.Context, filter interfaces.ServiceOrderFilter) ([]entities.ServiceOrder, error) {
	return r.t.filter(func(o entities.ServiceOrder) bool {
		return (filter.Status == "" || o.Status == filter.Status) &&
			(filter.TechnicianID == "" || o.AssignedTechnicianID == filter.TechnicianID)
	}), nil
}

// UpdateStatus applies from -> to only while the stored status is still from.
func (r *ServiceOrderRepository) UpdateStatus(_ context.Context, id string, from, to entities.ServiceStatus, at time.Time) (entities.ServiceOrder, error) {
	o, _ := r.t.update(id, func(o *entities.ServiceOrder) bool {
		if o.Status != from {
			return false
		}
		o.Status = to
		switch to {
		case entities.ServiceStatusEnProceso:
			o.StartedAt = &at
		case entities.ServiceStatusTerminado:
			o.CompletedAt = &at
		}
		return true
	})
	return o, nil
}

func (r *ServiceOrderRepository) AssignTechnician(_ context.Context, id, technicianID, technicianName string) (entities.ServiceOrder, error) {
	o, _ := r.t.update(id, func(o *entities.ServiceOrder) bool {
		o.AssignedTechnicianID = technicianID
		o.AssignedTechnicianName = technicianName
		return true
	})
	return o, nil
}

func (r *ServiceOrderRepository) CountByStatus(_ context.Context, status entities.ServiceStatus) (int, error) {
	return r.t.count(func(o entities.ServiceOrder) bool { return o.Status == status }), nil
}

func (r *ServiceOrderRepository) CountCompletedOn(_ context.Context, day string) (int, error) {
	return r.t.count(func(o entities.ServiceOrder) bool {
		return o.Status == entities.ServiceStatusTerminado && o.CompletedAt != nil &&
			strings.HasPrefix(o.CompletedAt.UTC().Format(time.RFC3339), day)
	}), nil
}

type NotificationRepository struct{ t *table[entities.Notification] }

func (r *NotificationRepository) Create(_ context.Context, n entities.Notification) (entities.Notification, error) {
	return create(r.t, n.ID, n)
}

// ListByRecipient returns newest first, at most limit entries.
func (r *NotificationRepository) ListByRecipient(_ context.Context, recipientID string, limit int) ([]entities.Notification, error) {
	out := r.t.filter(func(n entities.Notification) bool { return n.RecipientID == recipientID })
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *NotificationRepository) MarkRead(_ context.Context, id, recipientID string) (entities.Notification, error) {
	n, _ := r.t.update(id, func(n *entities.Notification) bool {
		if n.RecipientID != recipientID {
			return false
		}
		n.Read = true
		return true
	})
	return n, nil
}

func (r *NotificationRepository) CountUnread(_ context.Context, recipientID string) (int, error) {
	return r.t.count(func(n entities.Notification) bool { return n.RecipientID == recipientID && !n.Read }), nil
}
