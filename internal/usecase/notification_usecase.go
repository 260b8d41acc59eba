package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/internal/infrastructure/logger"
	"polarizados_ya/internal/infrastructure/metrics"
	"polarizados_ya/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationListLimit caps the inbox listing.
const NotificationListLimit = 100

var (
	ErrNotificationNotFound  = errors.New("notification not found")
	ErrInvalidNotificationID = errors.New("invalid notification id")
)

// INotificationUseCase exposes the caller's in-app inbox.
type INotificationUseCase interface {
	List(ctx context.Context, actor entities.User) ([]entities.Notification, error)
	MarkRead(ctx context.Context, actor entities.User, id string) (entities.Notification, error)
	UnreadCount(ctx context.Context, actor entities.User) (int, error)
}

type NotificationUseCase struct {
	repo interfaces.INotificationRepository
}

var _ INotificationUseCase = (*NotificationUseCase)(nil)

func NewNotificationUseCase(repo interfaces.INotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

func (u *NotificationUseCase) List(ctx context.Context, actor entities.User) ([]entities.Notification, error) {
	if actor.ID == "" {
		return nil, ErrUnauthenticated
	}
	return u.repo.ListByRecipient(ctx, actor.ID, NotificationListLimit)
}

func (u *NotificationUseCase) MarkRead(ctx context.Context, actor entities.User, id string) (entities.Notification, error) {
	if actor.ID == "" {
		return entities.Notification{}, ErrUnauthenticated
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Notification{}, ErrInvalidNotificationID
	}
	n, err := u.repo.MarkRead(ctx, id, actor.ID)
	if err != nil {
		return entities.Notification{}, err
	}
	if n.ID == "" {
		return entities.Notification{}, ErrNotificationNotFound
	}
	return n, nil
}

func (u *NotificationUseCase) UnreadCount(ctx context.Context, actor entities.User) (int, error) {
	if actor.ID == "" {
		return 0, ErrUnauthenticated
	}
	return u.repo.CountUnread(ctx, actor.ID)
}

// notifyInternal stores an in-app notification. Failures are logged and never abort the caller.
func notifyInternal(ctx context.Context, repo interfaces.INotificationRepository, recipientID, title, message, entityType, entityID string) {
	now := time.Now().UTC()
	_, err := repo.Create(ctx, entities.Notification{
		ID:                uuid.NewString(),
		RecipientID:       recipientID,
		NotificationType:  entities.NotificationTypeInternal,
		Title:             title,
		Message:           message,
		RelatedEntityType: entityType,
		RelatedEntityID:   entityID,
		SentAt:            now,
		CreatedAt:         now,
	})
	metrics.RecordNotification(string(entities.NotificationTypeInternal), err)
	if err != nil {
		logger.WithContext(ctx).Error("[notification][usecase] failed to store notification",
			zap.String("recipient_id", recipientID), zap.Error(err))
	}
}

// notifyEmail sends a client email. Failures are logged and never abort the caller.
func notifyEmail(ctx context.Context, sender interfaces.IEmailSender, to, subject, body string) {
	if sender == nil || strings.TrimSpace(to) == "" {
		return
	}
	err := sender.SendHTML(ctx, to, subject, body)
	metrics.RecordNotification(string(entities.NotificationTypeEmail), err)
	if err != nil {
		logger.WithContext(ctx).Error("[notification][usecase] failed to send email", zap.String("to", to), zap.Error(err))
	}
}

// notifyWhatsApp sends a client WhatsApp message. Failures are logged and never abort the caller.
func notifyWhatsApp(ctx context.Context, sender interfaces.IWhatsAppSender, to, body string) {
	if sender == nil || strings.TrimSpace(to) == "" {
		return
	}
	_, err := sender.Send(ctx, to, body)
	metrics.RecordNotification(string(entities.NotificationTypeWhatsApp), err)
	if err != nil {
		logger.WithContext(ctx).Error("[notification][usecase] failed to send whatsapp", zap.String("to", to), zap.Error(err))
	}
}
