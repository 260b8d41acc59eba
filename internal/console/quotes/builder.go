package quotes

import (
	"context"
	"errors"
	"strings"
	"sync"

	request "polarizados_ya/internal/adapter/http/dto/request"
	response "polarizados_ya/internal/adapter/http/dto/response"
	"polarizados_ya/internal/console/apiclient"
	"polarizados_ya/internal/domain/entities"
)

var (
	ErrItemIndex  = errors.New("quote item index out of range")
	ErrNotPending = errors.New("quote is not pending")
)

// API is the backend surface for quotes.
type API interface {
	CreateQuote(ctx context.Context, in request.QuoteRequest) (response.QuoteResponse, error)
	ApproveQuote(ctx context.Context, id, signatureURL, cedulaPhotoURL string) (response.QuoteResponse, error)
}

// Builder is the quote draft: a vehicle, its client and catalog line items.
type Builder struct {
	api API

	mu          sync.Mutex
	vehicleID   string
	clientName  string
	clientEmail string
	notes       string
	items       []entities.QuoteItem
}

func NewBuilder(api API) *Builder {
	return &Builder{api: api}
}

// SelectVehicle sets the vehicle and copies its client contact into the draft.
func (b *Builder) SelectVehicle(v response.VehicleResponse) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.vehicleID = v.ID
	b.clientName = v.ClientName
	b.clientEmail = v.ClientEmail
}

func (b *Builder) SetNotes(notes string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notes = notes
}

// AddItem appends the catalog service at list price, quantity 1.
// A service already in the draft is rejected, not merged.
func (b *Builder) AddItem(code entities.ServiceCode) error {
	entry, ok := entities.LookupService(code)
	if !ok {
		return apiclient.WrapValidation("service", entities.ErrUnknownService)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, it := range b.items {
		if it.Service == code {
			return apiclient.WrapValidation("service", entities.ErrDuplicateService)
		}
	}
	b.items = append(b.items, entities.QuoteItem{
		Service:     entry.Code,
		Description: entry.Label,
		Price:       entry.Price,
		Quantity:    1,
	})
	return nil
}

func (b *Builder) RemoveItem(index int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if index < 0 || index >= len(b.items) {
		return ErrItemIndex
	}
	b.items = append(b.items[:index], b.items[index+1:]...)
	return nil
}

// SetQuantity changes the quantity of the item at index.
func (b *Builder) SetQuantity(index, quantity int) error {
	if quantity < 1 {
		return apiclient.WrapValidation("quantity", entities.ErrInvalidQuoteItem)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if index < 0 || index >= len(b.items) {
		return ErrItemIndex
	}
	b.items[index].Quantity = quantity
	return nil
}

func (b *Builder) Items() []entities.QuoteItem {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]entities.QuoteItem, len(b.items))
	copy(out, b.items)
	return out
}

func (b *Builder) Totals() entities.QuoteTotals {
	b.mu.Lock()
	defer b.mu.Unlock()
	return entities.ComputeTotals(b.items)
}

// Submit creates the quote. The draft is reset only when the server accepts it.
func (b *Builder) Submit(ctx context.Context) (response.QuoteResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if strings.TrimSpace(b.vehicleID) == "" {
		return response.QuoteResponse{}, apiclient.NewValidationError("vehicle", "selecciona un vehículo")
	}
	if err := entities.ValidateQuoteItems(b.items); err != nil {
		return response.QuoteResponse{}, apiclient.WrapValidation("items", err)
	}

	items := make([]request.QuoteItemRequest, len(b.items))
	for i, it := range b.items {
		items[i] = request.QuoteItemRequest{
			Service:     string(it.Service),
			Description: it.Description,
			Price:       it.Price,
			Quantity:    it.Quantity,
		}
	}
	out, err := b.api.CreateQuote(ctx, request.QuoteRequest{
		VehicleID:   b.vehicleID,
		ClientName:  b.clientName,
		ClientEmail: b.clientEmail,
		Items:       items,
		Notes:       b.notes,
	})
	if err != nil {
		return response.QuoteResponse{}, err
	}

	b.vehicleID, b.clientName, b.clientEmail, b.notes = "", "", "", ""
	b.items = nil
	return out, nil
}

// CanApprove reports whether the approve action should be offered.
func CanApprove(q response.QuoteResponse) bool {
	return q.Status == string(entities.QuoteStatusPending)
}

// Approve marks a pending quote approved, optionally attaching the client's
// signature and ID photo URLs. q is replaced with the server's copy on success.
func (b *Builder) Approve(ctx context.Context, q *response.QuoteResponse, signatureURL, cedulaPhotoURL string) error {
	if !CanApprove(*q) {
		return ErrNotPending
	}
	out, err := b.api.ApproveQuote(ctx, q.ID, signatureURL, cedulaPhotoURL)
	if err != nil {
		return err
	}
	*q = out
	return nil
}
