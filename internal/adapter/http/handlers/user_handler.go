package handlers

import (
	"errors"
	"net/http"

	response "polarizados_ya/internal/adapter/http/dto/response"
	"polarizados_ya/internal/adapter/http/middleware"
	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/internal/usecase"
	"polarizados_ya/pkg"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes staff administration.
type UserHandler struct {
	usecase usecase.IUserUseCase
}

func NewUserHandler(uc usecase.IUserUseCase) *UserHandler {
	return &UserHandler{usecase: uc}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.usecase.List(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respond(c, mapUserError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromUsers(users))
}

func (h *UserHandler) ListTechnicians(c *gin.Context) {
	users, err := h.usecase.ListTechnicians(c.Request.Context())
	if err != nil {
		respond(c, mapUserError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromUsers(users))
}

// UpdateRole reads the new role from the role query parameter.
func (h *UserHandler) UpdateRole(c *gin.Context) {
	role := entities.UserRole(c.Query("role"))
	_, err := h.usecase.UpdateRole(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), role)
	if err != nil {
		respond(c, mapUserError(err))
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Rol actualizado correctamente"})
}

func mapUserError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		return pkg.NewDomainErrorSimple("USER_NOT_FOUND", "Usuario no encontrado", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidUserID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Usuario inválido", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidRole):
		return pkg.NewDomainErrorSimple("INVALID_ROLE", "Rol inválido", http.StatusBadRequest)
	default:
		return mapCommonError(err)
	}
}
