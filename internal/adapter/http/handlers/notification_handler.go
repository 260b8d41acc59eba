package handlers

import (
	"errors"
	"net/http"

	response "polarizados_ya/internal/adapter/http/dto/response"
	"polarizados_ya/internal/adapter/http/middleware"
	"polarizados_ya/internal/usecase"
	"polarizados_ya/pkg"

	"github.com/gin-gonic/gin"
)

// NotificationHandler exposes the caller's inbox.
type NotificationHandler struct {
	usecase usecase.INotificationUseCase
}

func NewNotificationHandler(uc usecase.INotificationUseCase) *NotificationHandler {
	return &NotificationHandler{usecase: uc}
}

func (h *NotificationHandler) List(c *gin.Context) {
	ns, err := h.usecase.List(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respond(c, mapNotificationError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromNotifications(ns))
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if _, err := h.usecase.MarkRead(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		respond(c, mapNotificationError(err))
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Notificación marcada como leída"})
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	n, err := h.usecase.UnreadCount(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respond(c, mapNotificationError(err))
		return
	}
	c.JSON(http.StatusOK, response.CountResponse{Count: n})
}

func mapNotificationError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrNotificationNotFound):
		return pkg.NewDomainErrorSimple("NOTIFICATION_NOT_FOUND", "Notificación no encontrada", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidNotificationID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Notificación inválida", http.StatusBadRequest)
	default:
		return mapCommonError(err)
	}
}
