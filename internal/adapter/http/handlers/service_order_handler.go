package handlers

import (
	"errors"
	"net/http"

	request "polarizados_ya/internal/adapter/http/dto/request"
	response "polarizados_ya/internal/adapter/http/dto/response"
	"polarizados_ya/internal/adapter/http/middleware"
	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/internal/usecase"
	"polarizados_ya/internal/usecase/interfaces"
	"polarizados_ya/pkg"

	"github.com/gin-gonic/gin"
)

// ServiceOrderHandler handles the service order pipeline.
type ServiceOrderHandler struct {
	usecase usecase.IServiceOrderUseCase
}

func NewServiceOrderHandler(uc usecase.IServiceOrderUseCase) *ServiceOrderHandler {
	return &ServiceOrderHandler{usecase: uc}
}

// Create godoc
// @Summary  Create a service order
// @Tags     service-orders
// @Accept   json
// @Produce  json
// @Param    payload body request.ServiceOrderRequest true "order"
// @Success  201 {object} response.ServiceOrderResponse
// @Failure  400 {object} pkg.HTTPError
// @Failure  403 {object} pkg.HTTPError
// @Security Bearer
// @Router   /service-orders [post]
func (h *ServiceOrderHandler) Create(c *gin.Context) {
	var payload request.ServiceOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond(c, errInvalidPayload)
		return
	}

	o, err := h.usecase.Create(c.Request.Context(), middleware.CurrentUser(c), payload.ToInput())
	if err != nil {
		respond(c, mapServiceOrderError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromServiceOrder(o))
}

// List godoc
// @Summary  List service orders, newest first
// @Tags     service-orders
// @Produce  json
// @Param    status        query string false "pipeline status"
// @Param    technician_id query string false "assigned technician"
// @Success  200 {array} response.ServiceOrderResponse
// @Security Bearer
// @Router   /service-orders [get]
func (h *ServiceOrderHandler) List(c *gin.Context) {
	filter := interfaces.ServiceOrderFilter{
		Status:       entities.ServiceStatus(c.Query("status")),
		TechnicianID: c.Query("technician_id"),
	}
	orders, err := h.usecase.List(c.Request.Context(), middleware.CurrentUser(c), filter)
	if err != nil {
		respond(c, mapServiceOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromServiceOrderDetailsList(orders))
}

func (h *ServiceOrderHandler) Get(c *gin.Context) {
	d, err := h.usecase.Get(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		respond(c, mapServiceOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromServiceOrderDetails(d))
}

// UpdateStatus godoc
// @Summary  Advance an order to the next status
// @Tags     service-orders
// @Accept   json
// @Produce  json
// @Param    id      path string                true "order id"
// @Param    payload body request.StatusRequest true "target status"
// @Success  200 {object} response.MessageResponse
// @Failure  409 {object} pkg.HTTPError
// @Security Bearer
// @Router   /service-orders/{id}/status [put]
func (h *ServiceOrderHandler) UpdateStatus(c *gin.Context) {
	var payload request.StatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond(c, errInvalidPayload)
		return
	}

	_, err := h.usecase.UpdateStatus(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), entities.ServiceStatus(payload.Status))
	if err != nil {
		respond(c, mapServiceOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Estado actualizado"})
}

func (h *ServiceOrderHandler) AssignTechnician(c *gin.Context) {
	var payload request.AssignTechnicianRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond(c, errInvalidPayload)
		return
	}

	_, err := h.usecase.AssignTechnician(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), payload.TechnicianID)
	if err != nil {
		respond(c, mapServiceOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Técnico asignado correctamente"})
}

func mapServiceOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrServiceOrderNotFound):
		return pkg.NewDomainErrorSimple("SERVICE_ORDER_NOT_FOUND", "Orden no encontrada", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidServiceOrderID), errors.Is(err, usecase.ErrInvalidVehicleID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Datos inválidos", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidEstimatedHours):
		return pkg.NewDomainErrorSimple("INVALID_ESTIMATED_HOURS", "Las horas estimadas no pueden ser negativas", http.StatusBadRequest)
	case errors.Is(err, entities.ErrTerminalState):
		return pkg.NewDomainErrorSimple("ORDER_COMPLETED", "La orden ya está terminada", http.StatusConflict)
	case errors.Is(err, entities.ErrInvalidTransition):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", "Solo se puede avanzar al siguiente estado", http.StatusConflict)
	case errors.Is(err, usecase.ErrServiceOrderConflict):
		return pkg.NewDomainErrorSimple("ORDER_CHANGED", "La orden cambió de estado, recarga e intenta de nuevo", http.StatusConflict)
	default:
		return mapCommonError(err)
	}
}
