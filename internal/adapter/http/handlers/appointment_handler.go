package handlers

import (
	"errors"
	"net/http"

	request "polarizados_ya/internal/adapter/http/dto/request"
	response "polarizados_ya/internal/adapter/http/dto/response"
	"polarizados_ya/internal/adapter/http/middleware"
	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/internal/usecase"
	"polarizados_ya/pkg"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler handles HTTP requests for appointments.
type AppointmentHandler struct {
	usecase usecase.IAppointmentUseCase
}

func NewAppointmentHandler(uc usecase.IAppointmentUseCase) *AppointmentHandler {
	return &AppointmentHandler{usecase: uc}
}

// Create godoc
// @Summary  Schedule an appointment
// @Tags     appointments
// @Accept   json
// @Produce  json
// @Param    payload body request.AppointmentRequest true "appointment"
// @Success  201 {object} response.AppointmentResponse
// @Failure  400 {object} pkg.HTTPError
// @Security Bearer
// @Router   /appointments [post]
func (h *AppointmentHandler) Create(c *gin.Context) {
	var payload request.AppointmentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond(c, errInvalidPayload)
		return
	}

	a, err := h.usecase.Create(c.Request.Context(), middleware.CurrentUser(c), payload.ToAppointment())
	if err != nil {
		respond(c, mapAppointmentError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromAppointment(a))
}

// List filters by the optional date query parameter (YYYY-MM-DD).
func (h *AppointmentHandler) List(c *gin.Context) {
	as, err := h.usecase.List(c.Request.Context(), c.Query("date"))
	if err != nil {
		respond(c, mapAppointmentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromAppointments(as))
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	a, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond(c, mapAppointmentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromAppointment(a))
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var payload request.StatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond(c, errInvalidPayload)
		return
	}

	if _, err := h.usecase.UpdateStatus(c.Request.Context(), c.Param("id"), entities.ServiceStatus(payload.Status)); err != nil {
		respond(c, mapAppointmentError(err))
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Estado actualizado"})
}

func mapAppointmentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrAppointmentNotFound):
		return pkg.NewDomainErrorSimple("APPOINTMENT_NOT_FOUND", "Cita no encontrada", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidAppointmentID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Cita inválida", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidDate):
		return pkg.NewDomainErrorSimple("INVALID_DATE", "Fecha inválida, usa el formato AAAA-MM-DD", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidTimeSlot):
		return pkg.NewDomainErrorSimple("INVALID_TIME_SLOT", "Horario no disponible", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidClient):
		return pkg.NewDomainErrorSimple("INVALID_CLIENT", "Nombre y teléfono del cliente son obligatorios", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidPlate):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Placa inválida", http.StatusBadRequest)
	default:
		return mapCommonError(err)
	}
}
