package interfaces

import (
	"context"
	"time"

	"polarizados_ya/internal/domain/entities"
)

// IQuoteRepository abstracts DynamoDB persistence for Quote.
//
// The API must be able to:
//   - create a pending quote with server-computed totals
//   - approve a quote only while it is still pending
type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	List(ctx context.Context) ([]entities.Quote, error)
	// Approve returns the zero-value Quote when id does not exist or is no longer pending.
	Approve(ctx context.Context, id string, approvedAt time.Time, signatureURL, cedulaPhotoURL string) (entities.Quote, error)
	CountByStatus(ctx context.Context, status entities.QuoteStatus) (int, error)
}
