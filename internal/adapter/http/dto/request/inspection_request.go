package request

import (
	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/internal/usecase"
)

type InspectionItemRequest struct {
	Area      string `json:"area"`
	Condition string `json:"condition"`
	Notes     string `json:"notes"`
	HasDamage bool   `json:"has_damage"`
}

// InspectionRequest carries photos as base64 JPEG data URLs.
type InspectionRequest struct {
	VehicleID      string                  `json:"vehicle_id" binding:"required"`
	ServiceOrderID string                  `json:"service_order_id"`
	Items          []InspectionItemRequest `json:"items"`
	GeneralNotes   string                  `json:"general_notes"`
	Photos         []string                `json:"photos"`
}

func (r InspectionRequest) ToInput() usecase.InspectionInput {
	items := make([]entities.InspectionItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = entities.InspectionItem{
			Area:      it.Area,
			Condition: entities.Condition(it.Condition),
			Notes:     it.Notes,
			HasDamage: it.HasDamage,
		}
	}
	return usecase.InspectionInput{
		VehicleID:      r.VehicleID,
		ServiceOrderID: r.ServiceOrderID,
		Items:          items,
		GeneralNotes:   r.GeneralNotes,
		Photos:         r.Photos,
	}
}
