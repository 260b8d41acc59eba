package response

import (
	"time"

	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/internal/usecase"
)

type ServiceOrderResponse struct {
	ID                     string           `json:"id"`
	VehicleID              string           `json:"vehicle_id"`
	QuoteID                string           `json:"quote_id,omitempty"`
	AppointmentID          string           `json:"appointment_id,omitempty"`
	Services               []string         `json:"services"`
	Status                 string           `json:"status"`
	AssignedTechnicianID   string           `json:"assigned_technician_id,omitempty"`
	AssignedTechnicianName string           `json:"assigned_technician_name,omitempty"`
	EstimatedHours         *float64         `json:"estimated_hours,omitempty"`
	ActualHours            *float64         `json:"actual_hours,omitempty"`
	Notes                  string           `json:"notes,omitempty"`
	StartedAt              *time.Time       `json:"started_at,omitempty"`
	CompletedAt            *time.Time       `json:"completed_at,omitempty"`
	CreatedAt              time.Time        `json:"created_at"`
	CreatedBy              string           `json:"created_by"`
	Vehicle                *VehicleResponse `json:"vehicle,omitempty"`
}

func FromServiceOrder(o entities.ServiceOrder) ServiceOrderResponse {
	return ServiceOrderResponse{
		ID:                     o.ID,
		VehicleID:              o.VehicleID,
		QuoteID:                o.QuoteID,
		AppointmentID:          o.AppointmentID,
		Services:               serviceStrings(o.Services),
		Status:                 string(o.Status),
		AssignedTechnicianID:   o.AssignedTechnicianID,
		AssignedTechnicianName: o.AssignedTechnicianName,
		EstimatedHours:         o.EstimatedHours,
		ActualHours:            o.ActualHours,
		Notes:                  o.Notes,
		StartedAt:              o.StartedAt,
		CompletedAt:            o.CompletedAt,
		CreatedAt:              o.CreatedAt,
		CreatedBy:              o.CreatedBy,
	}
}

func FromServiceOrderDetails(d usecase.ServiceOrderDetails) ServiceOrderResponse {
	out := FromServiceOrder(d.Order)
	if d.Vehicle != nil {
		v := FromVehicle(*d.Vehicle)
		out.Vehicle = &v
	}
	return out
}

func FromServiceOrderDetailsList(ds []usecase.ServiceOrderDetails) []ServiceOrderResponse {
	out := make([]ServiceOrderResponse, len(ds))
	for i, d := range ds {
		out[i] = FromServiceOrderDetails(d)
	}
	return out
}
