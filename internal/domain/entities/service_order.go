package entities

import "time"

// ServiceStatus is a stage of the service order pipeline.
type ServiceStatus string

const (
	ServiceStatusAgendado   ServiceStatus = "agendado"
	ServiceStatusEnProceso  ServiceStatus = "en_proceso"
	ServiceStatusEnRevision ServiceStatus = "en_revision"
	ServiceStatusTerminado  ServiceStatus = "terminado"
)

// ServiceStatuses is the pipeline, in order. Orders only ever move one step forward.
var ServiceStatuses = []ServiceStatus{
	ServiceStatusAgendado,
	ServiceStatusEnProceso,
	ServiceStatusEnRevision,
	ServiceStatusTerminado,
}

func (s ServiceStatus) Valid() bool {
	return s.index() >= 0
}

func (s ServiceStatus) index() int {
	for i, st := range ServiceStatuses {
		if st == s {
			return i
		}
	}
	return -1
}

// Terminal reports whether no further transition exists.
func (s ServiceStatus) Terminal() bool {
	return s == ServiceStatuses[len(ServiceStatuses)-1]
}

// NextStatus returns the single status that may follow current.
// ErrTerminalState is returned for terminado, ErrUnknownStatus for values outside the pipeline.
func NextStatus(current ServiceStatus) (ServiceStatus, error) {
	i := current.index()
	if i < 0 {
		return "", ErrUnknownStatus
	}
	if i == len(ServiceStatuses)-1 {
		return "", ErrTerminalState
	}
	return ServiceStatuses[i+1], nil
}

// ValidateTransition accepts only the single forward step from current to target.
func ValidateTransition(current, target ServiceStatus) error {
	if !target.Valid() {
		return ErrUnknownStatus
	}
	next, err := NextStatus(current)
	if err != nil {
		return err
	}
	if next != target {
		return ErrInvalidTransition
	}
	return nil
}

// ServiceOrder is the work order a technician executes on a vehicle.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (status-index): status
//   - GSI2 (technician-index): assigned_technician_id
type ServiceOrder struct {
	ID                     string        `json:"id"`
	VehicleID              string        `json:"vehicle_id"`
	QuoteID                string        `json:"quote_id,omitempty"`
	AppointmentID          string        `json:"appointment_id,omitempty"`
	Services               []ServiceCode `json:"services"`
	Status                 ServiceStatus `json:"status"`
	AssignedTechnicianID   string        `json:"assigned_technician_id,omitempty"`
	AssignedTechnicianName string        `json:"assigned_technician_name,omitempty"`
	EstimatedHours         *float64      `json:"estimated_hours,omitempty"`
	ActualHours            *float64      `json:"actual_hours,omitempty"`
	Notes                  string        `json:"notes,omitempty"`
	StartedAt              *time.Time    `json:"started_at,omitempty"`
	CompletedAt            *time.Time    `json:"completed_at,omitempty"`
	CreatedAt              time.Time     `json:"created_at"`
	CreatedBy              string        `json:"created_by"`
}

// PartitionByStatus buckets orders per pipeline status for display, keeping input order.
// Orders with an unknown status are dropped.
func PartitionByStatus(orders []ServiceOrder) map[ServiceStatus][]ServiceOrder {
	out := make(map[ServiceStatus][]ServiceOrder, len(ServiceStatuses))
	for _, s := range ServiceStatuses {
		out[s] = []ServiceOrder{}
	}
	for _, o := range orders {
		if _, ok := out[o.Status]; ok {
			out[o.Status] = append(out[o.Status], o)
		}
	}
	return out
}
