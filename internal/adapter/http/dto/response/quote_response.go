package response

import (
	"time"

	"polarizados_ya/internal/domain/entities"
)

type QuoteItemResponse struct {
	Service     string `json:"service"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity"`
}

type QuoteResponse struct {
	ID             string              `json:"id"`
	VehicleID      string              `json:"vehicle_id"`
	ClientName     string              `json:"client_name"`
	ClientEmail    string              `json:"client_email,omitempty"`
	Items          []QuoteItemResponse `json:"items"`
	Subtotal       int64               `json:"subtotal"`
	Tax            int64               `json:"tax"`
	Total          int64               `json:"total"`
	Notes          string              `json:"notes,omitempty"`
	Status         string              `json:"status"`
	ApprovedAt     *time.Time          `json:"approved_at,omitempty"`
	SignatureURL   string              `json:"signature_url,omitempty"`
	CedulaPhotoURL string              `json:"cedula_photo_url,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	CreatedBy      string              `json:"created_by"`
}

func FromQuote(q entities.Quote) QuoteResponse {
	items := make([]QuoteItemResponse, len(q.Items))
	for i, it := range q.Items {
		items[i] = QuoteItemResponse{
			Service:     string(it.Service),
			Description: it.Description,
			Price:       it.Price,
			Quantity:    it.Quantity,
		}
	}
	return QuoteResponse{
		ID:             q.ID,
		VehicleID:      q.VehicleID,
		ClientName:     q.ClientName,
		ClientEmail:    q.ClientEmail,
		Items:          items,
		Subtotal:       q.Subtotal,
		Tax:            q.Tax,
		Total:          q.Total,
		Notes:          q.Notes,
		Status:         string(q.Status),
		ApprovedAt:     q.ApprovedAt,
		SignatureURL:   q.SignatureURL,
		CedulaPhotoURL: q.CedulaPhotoURL,
		CreatedAt:      q.CreatedAt,
		CreatedBy:      q.CreatedBy,
	}
}

func FromQuotes(qs []entities.Quote) []QuoteResponse {
	out := make([]QuoteResponse, len(qs))
	for i, q := range qs {
		out[i] = FromQuote(q)
	}
	return out
}
