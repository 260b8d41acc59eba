package response

import (
	"time"

	"polarizados_ya/internal/domain/entities"
)

type AppointmentResponse struct {
	ID          string    `json:"id"`
	VehicleID   string    `json:"vehicle_id,omitempty"`
	ClientName  string    `json:"client_name"`
	ClientPhone string    `json:"client_phone"`
	ClientEmail string    `json:"client_email,omitempty"`
	Plate       string    `json:"plate,omitempty"`
	Brand       string    `json:"brand,omitempty"`
	Model       string    `json:"model,omitempty"`
	Date        string    `json:"date"`
	TimeSlot    string    `json:"time_slot"`
	Services    []string  `json:"services"`
	Notes       string    `json:"notes,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   string    `json:"created_by"`
}

func FromAppointment(a entities.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:          a.ID,
		VehicleID:   a.VehicleID,
		ClientName:  a.ClientName,
		ClientPhone: a.ClientPhone,
		ClientEmail: a.ClientEmail,
		Plate:       a.Plate,
		Brand:       a.Brand,
		Model:       a.Model,
		Date:        a.Date,
		TimeSlot:    a.TimeSlot,
		Services:    serviceStrings(a.Services),
		Notes:       a.Notes,
		Status:      string(a.Status),
		CreatedAt:   a.CreatedAt,
		CreatedBy:   a.CreatedBy,
	}
}

func FromAppointments(as []entities.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, len(as))
	for i, a := range as {
		out[i] = FromAppointment(a)
	}
	return out
}

func serviceStrings(codes []entities.ServiceCode) []string {
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = string(c)
	}
	return out
}
