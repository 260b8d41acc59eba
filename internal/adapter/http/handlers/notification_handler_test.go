package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	response "polarizados_ya/internal/adapter/http/dto/response"
	"polarizados_ya/internal/adapter/http/handlers/mocks"
	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/internal/usecase"

	"go.uber.org/mock/gomock"
)

func TestNotificationHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockINotificationUseCase(ctrl)
	r := newRouter(tecnicoUser)
	r.GET("/notifications", NewNotificationHandler(uc).List)

	uc.EXPECT().List(gomock.Any(), tecnicoUser).Return([]entities.Notification{
		{ID: "n-1", Title: "Nueva orden", RelatedEntityType: "service_order", RelatedEntityID: "so-1"},
	}, nil)

	w := serve(r, http.MethodGet, "/notifications", "")
	expectStatus(t, w, http.StatusOK)

	var body []response.NotificationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || len(body) != 1 || body[0].RelatedEntityID != "so-1" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestNotificationHandler_MarkRead(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "someone else's notification", err: usecase.ErrNotificationNotFound, status: http.StatusNotFound, code: "NOTIFICATION_NOT_FOUND"},
		{name: "blank id", err: usecase.ErrInvalidNotificationID, status: http.StatusBadRequest, code: "INVALID_REQUEST"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			uc := mocks.NewMockINotificationUseCase(ctrl)
			r := newRouter(tecnicoUser)
			r.PUT("/notifications/:id/read", NewNotificationHandler(uc).MarkRead)

			uc.EXPECT().MarkRead(gomock.Any(), tecnicoUser, "n-9").Return(entities.Notification{}, tc.err)

			w := serve(r, http.MethodPut, "/notifications/n-9/read", "")
			expectStatus(t, w, tc.status)
			if body := decodeError(t, w); body.Code != tc.code {
				t.Fatalf("expected code %s, got %s", tc.code, body.Code)
			}
		})
	}

	t.Run("marked", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockINotificationUseCase(ctrl)
		r := newRouter(tecnicoUser)
		r.PUT("/notifications/:id/read", NewNotificationHandler(uc).MarkRead)

		uc.EXPECT().MarkRead(gomock.Any(), tecnicoUser, "n-1").Return(entities.Notification{ID: "n-1", Read: true}, nil)

		w := serve(r, http.MethodPut, "/notifications/n-1/read", "")
		expectStatus(t, w, http.StatusOK)
	})
}

func TestNotificationHandler_UnreadCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockINotificationUseCase(ctrl)
	r := newRouter(tecnicoUser)
	r.GET("/notifications/unread-count", NewNotificationHandler(uc).UnreadCount)

	uc.EXPECT().UnreadCount(gomock.Any(), tecnicoUser).Return(4, nil)

	w := serve(r, http.MethodGet, "/notifications/unread-count", "")
	expectStatus(t, w, http.StatusOK)

	var body response.CountResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body.Count != 4 {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}
