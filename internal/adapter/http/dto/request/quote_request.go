package request

import (
	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/internal/usecase"
)

type QuoteItemRequest struct {
	Service     string `json:"service"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity"`
}

type QuoteRequest struct {
	VehicleID   string             `json:"vehicle_id" binding:"required"`
	ClientName  string             `json:"client_name"`
	ClientEmail string             `json:"client_email"`
	Items       []QuoteItemRequest `json:"items"`
	Notes       string             `json:"notes"`
}

// ToInput defaults an omitted quantity to 1.
func (r QuoteRequest) ToInput() usecase.QuoteInput {
	items := make([]entities.QuoteItem, len(r.Items))
	for i, it := range r.Items {
		qty := it.Quantity
		if qty == 0 {
			qty = 1
		}
		items[i] = entities.QuoteItem{
			Service:     entities.ServiceCode(it.Service),
			Description: it.Description,
			Price:       it.Price,
			Quantity:    qty,
		}
	}
	return usecase.QuoteInput{
		VehicleID:   r.VehicleID,
		ClientName:  r.ClientName,
		ClientEmail: r.ClientEmail,
		Items:       items,
		Notes:       r.Notes,
	}
}
