package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/internal/infrastructure/logger"
	"polarizados_ya/internal/infrastructure/metrics"
	"polarizados_ya/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrQuoteNotFound   = errors.New("quote not found")
	ErrQuoteNotPending = errors.New("quote is not pending")
	ErrInvalidQuoteID  = errors.New("invalid quote id")
)

// QuoteInput is the quote creation command. Totals are always computed here.
type QuoteInput struct {
	VehicleID   string
	ClientName  string
	ClientEmail string
	Items       []entities.QuoteItem
	Notes       string
}

// IQuoteUseCase exposes quote operations.
//
//   - Create computes subtotal, 19% tax and total server side
//   - Approve moves pending -> approved, once
type IQuoteUseCase interface {
	Create(ctx context.Context, actor entities.User, in QuoteInput) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	List(ctx context.Context) ([]entities.Quote, error)
	Approve(ctx context.Context, id, signatureURL, cedulaPhotoURL string) (entities.Quote, error)
}

type QuoteUseCase struct {
	repo     interfaces.IQuoteRepository
	vehicles interfaces.IVehicleRepository
	now      func() time.Time
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(repo interfaces.IQuoteRepository, vehicles interfaces.IVehicleRepository) *QuoteUseCase {
	return &QuoteUseCase{repo: repo, vehicles: vehicles, now: time.Now}
}

func (u *QuoteUseCase) Create(ctx context.Context, actor entities.User, in QuoteInput) (entities.Quote, error) {
	if err := entities.ValidateQuoteItems(in.Items); err != nil {
		return entities.Quote{}, err
	}
	vehicle, err := loadVehicle(ctx, u.vehicles, in.VehicleID)
	if err != nil {
		return entities.Quote{}, err
	}

	clientName := strings.TrimSpace(in.ClientName)
	if clientName == "" {
		clientName = vehicle.ClientName
	}
	if clientName == "" {
		return entities.Quote{}, ErrInvalidClient
	}
	clientEmail := strings.TrimSpace(in.ClientEmail)
	if clientEmail == "" {
		clientEmail = vehicle.ClientEmail
	}

	items := make([]entities.QuoteItem, len(in.Items))
	for i, it := range in.Items {
		if strings.TrimSpace(it.Description) == "" {
			entry, _ := entities.LookupService(it.Service)
			it.Description = entry.Label
		}
		items[i] = it
	}

	q := entities.Quote{
		ID:          uuid.NewString(),
		VehicleID:   vehicle.ID,
		ClientName:  clientName,
		ClientEmail: clientEmail,
		Items:       items,
		QuoteTotals: entities.ComputeTotals(items),
		Notes:       strings.TrimSpace(in.Notes),
		Status:      entities.QuoteStatusPending,
		CreatedAt:   u.now().UTC(),
		CreatedBy:   actor.ID,
	}
	created, err := u.repo.Create(ctx, q)
	if err != nil {
		return entities.Quote{}, err
	}
	logger.WithContext(ctx).Info("[quote][usecase] quote created",
		zap.String("quote_id", created.ID), zap.Int64("total", created.Total))
	return created, nil
}

func (u *QuoteUseCase) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return q, nil
}

// List returns quotes newest first.
func (u *QuoteUseCase) List(ctx context.Context) ([]entities.Quote, error) {
	items, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (u *QuoteUseCase) Approve(ctx context.Context, id, signatureURL, cedulaPhotoURL string) (entities.Quote, error) {
	current, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if current.Status != entities.QuoteStatusPending {
		return entities.Quote{}, ErrQuoteNotPending
	}

	approved, err := u.repo.Approve(ctx, current.ID, u.now().UTC(), strings.TrimSpace(signatureURL), strings.TrimSpace(cedulaPhotoURL))
	if err != nil {
		return entities.Quote{}, err
	}
	if approved.ID == "" {
		// approved concurrently between the read and the conditional write
		return entities.Quote{}, ErrQuoteNotPending
	}
	metrics.RecordQuoteApproved()
	logger.WithContext(ctx).Info("[quote][usecase] quote approved", zap.String("quote_id", approved.ID))
	return approved, nil
}
