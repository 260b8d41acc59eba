package entities

import (
	"strings"
	"time"
)

// InspectionArea is one of the fixed vehicle zones checked during the 360 inspection.
type InspectionArea struct {
	ID   string
	Name string
}

// InspectionAreas is the closed set of inspected zones, in checklist order.
var InspectionAreas = []InspectionArea{
	{ID: "front_bumper", Name: "Parachoques Delantero"},
	{ID: "rear_bumper", Name: "Parachoques Trasero"},
	{ID: "hood", Name: "Capó"},
	{ID: "trunk", Name: "Maletero"},
	{ID: "roof", Name: "Techo"},
	{ID: "left_front_door", Name: "Puerta Delantera Izquierda"},
	{ID: "right_front_door", Name: "Puerta Delantera Derecha"},
	{ID: "left_rear_door", Name: "Puerta Trasera Izquierda"},
	{ID: "right_rear_door", Name: "Puerta Trasera Derecha"},
	{ID: "left_front_fender", Name: "Guardafango Delantero Izquierdo"},
	{ID: "right_front_fender", Name: "Guardafango Delantero Derecho"},
	{ID: "left_rear_fender", Name: "Guardafango Trasero Izquierdo"},
	{ID: "right_rear_fender", Name: "Guardafango Trasero Derecho"},
	{ID: "windshield", Name: "Parabrisas"},
	{ID: "rear_window", Name: "Vidrio Trasero"},
	{ID: "left_windows", Name: "Vidrios Izquierdos"},
	{ID: "right_windows", Name: "Vidrios Derechos"},
	{ID: "left_mirror", Name: "Espejo Izquierdo"},
	{ID: "right_mirror", Name: "Espejo Derecho"},
	{ID: "interior", Name: "Interior General"},
}

// Condition grades an inspected area.
type Condition string

const (
	ConditionExcellent Condition = "excellent"
	ConditionGood      Condition = "good"
	ConditionFair      Condition = "fair"
	ConditionPoor      Condition = "poor"
)

func (c Condition) Valid() bool {
	switch c {
	case ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}
	return false
}

type InspectionItem struct {
	Area      string    `json:"area"`
	Condition Condition `json:"condition"`
	Notes     string    `json:"notes,omitempty"`
	HasDamage bool      `json:"has_damage"`
}

// Inspection is a submitted 360 check-in inspection.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (vehicle_id-index): vehicle_id
//
// Photos holds object storage keys, one per captured image, in capture order.
type Inspection struct {
	ID             string           `json:"id"`
	VehicleID      string           `json:"vehicle_id"`
	ServiceOrderID string           `json:"service_order_id,omitempty"`
	Items          []InspectionItem `json:"items"`
	GeneralNotes   string           `json:"general_notes,omitempty"`
	Photos         []string         `json:"photos"`
	CreatedAt      time.Time        `json:"created_at"`
	CreatedBy      string           `json:"created_by"`
}

// DefaultInspectionItems returns the pre-populated checklist: every area in good condition.
func DefaultInspectionItems() []InspectionItem {
	items := make([]InspectionItem, len(InspectionAreas))
	for i, a := range InspectionAreas {
		items[i] = InspectionItem{Area: a.ID, Condition: ConditionGood}
	}
	return items
}

// DamagePolicy controls the optional note requirement on damaged areas.
type DamagePolicy struct {
	RequireNotes bool
}

// ValidateInspectionItems checks that items hold exactly one entry per known area,
// each with a valid condition.
func ValidateInspectionItems(items []InspectionItem, policy DamagePolicy) error {
	known := make(map[string]bool, len(InspectionAreas))
	for _, a := range InspectionAreas {
		known[a.ID] = false
	}
	for _, it := range items {
		seen, ok := known[it.Area]
		if !ok {
			return ErrUnknownArea
		}
		if seen {
			return ErrDuplicateArea
		}
		known[it.Area] = true
		if !it.Condition.Valid() {
			return ErrInvalidCondition
		}
		if policy.RequireNotes && it.HasDamage && strings.TrimSpace(it.Notes) == "" {
			return ErrMissingDamageNote
		}
	}
	for _, seen := range known {
		if !seen {
			return ErrMissingArea
		}
	}
	return nil
}
