package entities

import "time"

// AppointmentDateLayout is the calendar-day format used for appointment dates.
const AppointmentDateLayout = "2006-01-02"

// TimeSlots are the bookable one-hour slots; 13:00-14:00 is lunch.
var TimeSlots = []string{
	"08:00 - 09:00",
	"09:00 - 10:00",
	"10:00 - 11:00",
	"11:00 - 12:00",
	"12:00 - 13:00",
	"14:00 - 15:00",
	"15:00 - 16:00",
	"16:00 - 17:00",
	"17:00 - 18:00",
}

func ValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// Appointment is a booked visit. Its status reuses the service pipeline values.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (date-index): date
type Appointment struct {
	ID          string        `json:"id"`
	VehicleID   string        `json:"vehicle_id,omitempty"`
	ClientName  string        `json:"client_name"`
	ClientPhone string        `json:"client_phone"`
	ClientEmail string        `json:"client_email,omitempty"`
	Plate       string        `json:"plate,omitempty"`
	Brand       string        `json:"brand,omitempty"`
	Model       string        `json:"model,omitempty"`
	Date        string        `json:"date"`
	TimeSlot    string        `json:"time_slot"`
	Services    []ServiceCode `json:"services"`
	Notes       string        `json:"notes,omitempty"`
	Status      ServiceStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	CreatedBy   string        `json:"created_by"`
}
