package request

import "polarizados_ya/internal/usecase"

type ServiceOrderRequest struct {
	VehicleID            string   `json:"vehicle_id" binding:"required"`
	QuoteID              string   `json:"quote_id"`
	AppointmentID        string   `json:"appointment_id"`
	Services             []string `json:"services"`
	AssignedTechnicianID string   `json:"assigned_technician_id"`
	EstimatedHours       *float64 `json:"estimated_hours"`
	Notes                string   `json:"notes"`
}

func (r ServiceOrderRequest) ToInput() usecase.ServiceOrderInput {
	return usecase.ServiceOrderInput{
		VehicleID:            r.VehicleID,
		QuoteID:              r.QuoteID,
		AppointmentID:        r.AppointmentID,
		Services:             ServiceCodes(r.Services),
		AssignedTechnicianID: r.AssignedTechnicianID,
		EstimatedHours:       r.EstimatedHours,
		Notes:                r.Notes,
	}
}
