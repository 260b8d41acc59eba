package interfaces

import (
	"context"

	"polarizados_ya/internal/domain/entities"
)

// INotificationRepository abstracts DynamoDB persistence for in-app notifications.
type INotificationRepository interface {
	Create(ctx context.Context, n entities.Notification) (entities.Notification, error)
	// ListByRecipient returns newest first, at most limit entries.
	ListByRecipient(ctx context.Context, recipientID string, limit int) ([]entities.Notification, error)
	// MarkRead returns the zero-value Notification when id does not belong to recipientID.
	MarkRead(ctx context.Context, id, recipientID string) (entities.Notification, error)
	CountUnread(ctx context.Context, recipientID string) (int, error)
}
