package request

import "polarizados_ya/internal/domain/entities"

type VehicleRequest struct {
	Plate        string `json:"plate" binding:"required"`
	Brand        string `json:"brand" binding:"required"`
	Model        string `json:"model" binding:"required"`
	Year         int    `json:"year" binding:"required"`
	Color        string `json:"color"`
	VIN          string `json:"vin"`
	ClientName   string `json:"client_name" binding:"required"`
	ClientPhone  string `json:"client_phone" binding:"required"`
	ClientEmail  string `json:"client_email"`
	ClientCedula string `json:"client_cedula"`
}

func (r VehicleRequest) ToVehicle() entities.Vehicle {
	return entities.Vehicle{
		Plate:        r.Plate,
		Brand:        r.Brand,
		Model:        r.Model,
		Year:         r.Year,
		Color:        r.Color,
		VIN:          r.VIN,
		ClientName:   r.ClientName,
		ClientPhone:  r.ClientPhone,
		ClientEmail:  r.ClientEmail,
		ClientCedula: r.ClientCedula,
	}
}

type AssignTechnicianRequest struct {
	TechnicianID string `json:"technician_id" binding:"required"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}
