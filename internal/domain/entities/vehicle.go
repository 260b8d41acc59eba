package entities

import (
	"strings"
	"time"
)

// VehicleStatus tracks where the car is on the shop floor. It is separate from
// the service order pipeline and is moved by side effects (appointment, inspection,
// technician assignment) or explicitly by staff.
type VehicleStatus string

const (
	VehicleStatusAgendado   VehicleStatus = "agendado"
	VehicleStatusIngresado  VehicleStatus = "ingresado"
	VehicleStatusConTecnico VehicleStatus = "con_tecnico"
	VehicleStatusEnProceso  VehicleStatus = "en_proceso"
	VehicleStatusFinalizado VehicleStatus = "finalizado"
)

func (s VehicleStatus) Valid() bool {
	switch s {
	case VehicleStatusAgendado, VehicleStatusIngresado, VehicleStatusConTecnico, VehicleStatusEnProceso, VehicleStatusFinalizado:
		return true
	}
	return false
}

// Vehicle is a client car registered at the shop.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (plate-index): plate
type Vehicle struct {
	ID                     string        `json:"id"`
	Plate                  string        `json:"plate"`
	Brand                  string        `json:"brand"`
	Model                  string        `json:"model"`
	Year                   int           `json:"year"`
	Color                  string        `json:"color"`
	VIN                    string        `json:"vin,omitempty"`
	ClientName             string        `json:"client_name"`
	ClientPhone            string        `json:"client_phone"`
	ClientEmail            string        `json:"client_email,omitempty"`
	ClientCedula           string        `json:"client_cedula,omitempty"`
	Status                 VehicleStatus `json:"status,omitempty"`
	AssignedTechnicianID   string        `json:"assigned_technician_id,omitempty"`
	AssignedTechnicianName string        `json:"assigned_technician_name,omitempty"`
	CurrentServiceOrderID  string        `json:"current_service_order_id,omitempty"`
	CreatedAt              time.Time     `json:"created_at"`
	CreatedBy              string        `json:"created_by"`
}

// NormalizePlate upper-cases and trims a plate so lookups are case-insensitive.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

// Inspectable reports whether a vehicle can go through the 360 check-in inspection.
func (v Vehicle) Inspectable() bool {
	return v.Status == "" || v.Status == VehicleStatusAgendado
}
