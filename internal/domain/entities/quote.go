package entities

import "time"

// QuoteStatus represents the lifecycle of a quote (cotización).
//
// Domain notes:
//   - A quote is created pending and may only move to approved.
//   - There is no reverse transition.
type QuoteStatus string

const (
	QuoteStatusPending  QuoteStatus = "pending"
	QuoteStatusApproved QuoteStatus = "approved"
)

// TaxRatePercent is the IVA applied on top of the quote subtotal.
const TaxRatePercent = 19

// QuoteItem is one line of a quote. Service codes are unique within a quote.
type QuoteItem struct {
	Service     ServiceCode `json:"service"`
	Description string      `json:"description"`
	Price       int64       `json:"price"`
	Quantity    int         `json:"quantity"`
}

// QuoteTotals are the derived amounts of a quote, in whole pesos.
type QuoteTotals struct {
	Subtotal int64 `json:"subtotal"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`
}

// Quote is the price quote handed to the client.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Monetary representation:
//   - Prices and totals are whole pesos (int64); tax is rounded half up.
type Quote struct {
	ID          string      `json:"id"`
	VehicleID   string      `json:"vehicle_id"`
	ClientName  string      `json:"client_name"`
	ClientEmail string      `json:"client_email,omitempty"`
	Items       []QuoteItem `json:"items"`
	QuoteTotals
	Notes          string      `json:"notes,omitempty"`
	Status         QuoteStatus `json:"status"`
	ApprovedAt     *time.Time  `json:"approved_at,omitempty"`
	SignatureURL   string      `json:"signature_url,omitempty"`
	CedulaPhotoURL string      `json:"cedula_photo_url,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	CreatedBy      string      `json:"created_by"`
}

// ComputeTotals sums price x quantity and applies the 19% tax.
// The tax is rounded half up to the nearest peso.
func ComputeTotals(items []QuoteItem) QuoteTotals {
	var subtotal int64
	for _, it := range items {
		subtotal += it.Price * int64(it.Quantity)
	}
	tax := (subtotal*TaxRatePercent + 50) / 100
	return QuoteTotals{Subtotal: subtotal, Tax: tax, Total: subtotal + tax}
}

// ValidateQuoteItems enforces non-empty items, unique services, positive price and quantity.
func ValidateQuoteItems(items []QuoteItem) error {
	if len(items) == 0 {
		return ErrNoServices
	}
	seen := make(map[ServiceCode]struct{}, len(items))
	for _, it := range items {
		if !it.Service.Valid() {
			return ErrUnknownService
		}
		if _, dup := seen[it.Service]; dup {
			return ErrDuplicateService
		}
		seen[it.Service] = struct{}{}
		if it.Price <= 0 || it.Quantity < 1 {
			return ErrInvalidQuoteItem
		}
	}
	return nil
}
