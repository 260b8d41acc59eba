package handlers

import (
	"errors"
	"net/http"

	request "polarizados_ya/internal/adapter/http/dto/request"
	response "polarizados_ya/internal/adapter/http/dto/response"
	"polarizados_ya/internal/adapter/http/middleware"
	"polarizados_ya/internal/usecase"
	"polarizados_ya/pkg"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles sign-up, sign-in and the current user.
type AuthHandler struct {
	usecase usecase.IAuthUseCase
}

func NewAuthHandler(uc usecase.IAuthUseCase) *AuthHandler {
	return &AuthHandler{usecase: uc}
}

// Register godoc
// @Summary  Register a staff user
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    payload body request.RegisterRequest true "user"
// @Success  200 {object} response.TokenResponse
// @Failure  400 {object} pkg.HTTPError
// @Router   /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var payload request.RegisterRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond(c, errInvalidPayload)
		return
	}

	result, err := h.usecase.Register(c.Request.Context(), payload.ToInput())
	if err != nil {
		respond(c, mapAuthError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromAuthResult(result))
}

// Login godoc
// @Summary  Sign in
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    payload body request.LoginRequest true "credentials"
// @Success  200 {object} response.TokenResponse
// @Failure  401 {object} pkg.HTTPError
// @Router   /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var payload request.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond(c, errInvalidPayload)
		return
	}

	result, err := h.usecase.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respond(c, mapAuthError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromAuthResult(result))
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, response.FromUser(middleware.CurrentUser(c)))
}

func mapAuthError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrEmailAlreadyRegistered):
		return pkg.NewDomainErrorSimple("EMAIL_ALREADY_REGISTERED", "El email ya está registrado", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return pkg.NewDomainErrorSimple("INVALID_CREDENTIALS", "Credenciales inválidas", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrInvalidEmail):
		return pkg.NewDomainErrorSimple("INVALID_EMAIL", "Email inválido", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidName):
		return pkg.NewDomainErrorSimple("INVALID_NAME", "El nombre es obligatorio", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidRole):
		return pkg.NewDomainErrorSimple("INVALID_ROLE", "Rol inválido", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrWeakPassword):
		return pkg.NewDomainErrorSimple("WEAK_PASSWORD", "La contraseña debe tener al menos 6 caracteres", http.StatusBadRequest)
	default:
		return mapCommonError(err)
	}
}
