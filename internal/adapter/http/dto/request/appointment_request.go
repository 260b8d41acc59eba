package request

import "polarizados_ya/internal/domain/entities"

type AppointmentRequest struct {
	VehicleID   string   `json:"vehicle_id"`
	ClientName  string   `json:"client_name" binding:"required"`
	ClientPhone string   `json:"client_phone" binding:"required"`
	ClientEmail string   `json:"client_email"`
	Plate       string   `json:"plate"`
	Brand       string   `json:"brand"`
	Model       string   `json:"model"`
	Date        string   `json:"date" binding:"required"`
	TimeSlot    string   `json:"time_slot" binding:"required"`
	Services    []string `json:"services"`
	Notes       string   `json:"notes"`
}

func (r AppointmentRequest) ToAppointment() entities.Appointment {
	return entities.Appointment{
		VehicleID:   r.VehicleID,
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
		ClientEmail: r.ClientEmail,
		Plate:       r.Plate,
		Brand:       r.Brand,
		Model:       r.Model,
		Date:        r.Date,
		TimeSlot:    r.TimeSlot,
		Services:    ServiceCodes(r.Services),
		Notes:       r.Notes,
	}
}

// ServiceCodes converts raw service identifiers; validation happens in the use case.
func ServiceCodes(raw []string) []entities.ServiceCode {
	out := make([]entities.ServiceCode, len(raw))
	for i, s := range raw {
		out[i] = entities.ServiceCode(s)
	}
	return out
}
