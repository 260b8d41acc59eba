package usecase

import (
	"context"
	"errors"
	"testing"

	"polarizados_ya/internal/domain/entities"
	mock_interfaces "polarizados_ya/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestNotificationUseCase(t *testing.T) {
	t.Run("anonymous rejected", func(t *testing.T) {
		uc := NewNotificationUseCase(nil)
		if _, err := uc.List(context.Background(), entities.User{}); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got %v", err)
		}
	})

	t.Run("list uses limit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockINotificationRepository(ctrl)
		uc := NewNotificationUseCase(repo)

		repo.EXPECT().ListByRecipient(gomock.Any(), "tec-1", NotificationListLimit).Return([]entities.Notification{{ID: "n-1"}}, nil)

		items, err := uc.List(context.Background(), tecnicoUser)
		if err != nil || len(items) != 1 {
			t.Fatalf("unexpected result: %v %v", items, err)
		}
	})

	t.Run("mark read of someone else's notification", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockINotificationRepository(ctrl)
		uc := NewNotificationUseCase(repo)

		repo.EXPECT().MarkRead(gomock.Any(), "n-1", "tec-1").Return(entities.Notification{}, nil)

		if _, err := uc.MarkRead(context.Background(), tecnicoUser, "n-1"); !errors.Is(err, ErrNotificationNotFound) {
			t.Fatalf("expected ErrNotificationNotFound, got %v", err)
		}
	})

	t.Run("unread count", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockINotificationRepository(ctrl)
		uc := NewNotificationUseCase(repo)

		repo.EXPECT().CountUnread(gomock.Any(), "tec-1").Return(3, nil)

		n, err := uc.UnreadCount(context.Background(), tecnicoUser)
		if err != nil || n != 3 {
			t.Fatalf("unexpected result: %d %v", n, err)
		}
	})
}
