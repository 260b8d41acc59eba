package response

import (
	"time"

	"polarizados_ya/internal/domain/entities"
)

type VehicleResponse struct {
	ID                     string    `json:"id"`
	Plate                  string    `json:"plate"`
	Brand                  string    `json:"brand"`
	Model                  string    `json:"model"`
	Year                   int       `json:"year"`
	Color                  string    `json:"color"`
	VIN                    string    `json:"vin,omitempty"`
	ClientName             string    `json:"client_name"`
	ClientPhone            string    `json:"client_phone"`
	ClientEmail            string    `json:"client_email,omitempty"`
	ClientCedula           string    `json:"client_cedula,omitempty"`
	Status                 string    `json:"status,omitempty"`
	AssignedTechnicianID   string    `json:"assigned_technician_id,omitempty"`
	AssignedTechnicianName string    `json:"assigned_technician_name,omitempty"`
	CurrentServiceOrderID  string    `json:"current_service_order_id,omitempty"`
	CreatedAt              time.Time `json:"created_at"`
	CreatedBy              string    `json:"created_by"`
}

func FromVehicle(v entities.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:                     v.ID,
		Plate:                  v.Plate,
		Brand:                  v.Brand,
		Model:                  v.Model,
		Year:                   v.Year,
		Color:                  v.Color,
		VIN:                    v.VIN,
		ClientName:             v.ClientName,
		ClientPhone:            v.ClientPhone,
		ClientEmail:            v.ClientEmail,
		ClientCedula:           v.ClientCedula,
		Status:                 string(v.Status),
		AssignedTechnicianID:   v.AssignedTechnicianID,
		AssignedTechnicianName: v.AssignedTechnicianName,
		CurrentServiceOrderID:  v.CurrentServiceOrderID,
		CreatedAt:              v.CreatedAt,
		CreatedBy:              v.CreatedBy,
	}
}

func FromVehicles(vs []entities.Vehicle) []VehicleResponse {
	out := make([]VehicleResponse, len(vs))
	for i, v := range vs {
		out[i] = FromVehicle(v)
	}
	return out
}
