package response

import (
	"time"

	"polarizados_ya/internal/domain/entities"
)

type InspectionItemResponse struct {
	Area      string `json:"area"`
	Condition string `json:"condition"`
	Notes     string `json:"notes,omitempty"`
	HasDamage bool   `json:"has_damage"`
}

// InspectionResponse lists photos as object storage keys.
type InspectionResponse struct {
	ID             string                   `json:"id"`
	VehicleID      string                   `json:"vehicle_id"`
	ServiceOrderID string                   `json:"service_order_id,omitempty"`
	Items          []InspectionItemResponse `json:"items"`
	GeneralNotes   string                   `json:"general_notes,omitempty"`
	Photos         []string                 `json:"photos"`
	CreatedAt      time.Time                `json:"created_at"`
	CreatedBy      string                   `json:"created_by"`
}

func FromInspection(i entities.Inspection) InspectionResponse {
	items := make([]InspectionItemResponse, len(i.Items))
	for n, it := range i.Items {
		items[n] = InspectionItemResponse{
			Area:      it.Area,
			Condition: string(it.Condition),
			Notes:     it.Notes,
			HasDamage: it.HasDamage,
		}
	}
	photos := i.Photos
	if photos == nil {
		photos = []string{}
	}
	return InspectionResponse{
		ID:             i.ID,
		VehicleID:      i.VehicleID,
		ServiceOrderID: i.ServiceOrderID,
		Items:          items,
		GeneralNotes:   i.GeneralNotes,
		Photos:         photos,
		CreatedAt:      i.CreatedAt,
		CreatedBy:      i.CreatedBy,
	}
}

func FromInspections(is []entities.Inspection) []InspectionResponse {
	out := make([]InspectionResponse, len(is))
	for n, i := range is {
		out[n] = FromInspection(i)
	}
	return out
}
