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

// VehicleHandler handles HTTP requests for vehicles.
type VehicleHandler struct {
	usecase usecase.IVehicleUseCase
}

func NewVehicleHandler(uc usecase.IVehicleUseCase) *VehicleHandler {
	return &VehicleHandler{usecase: uc}
}

// Create godoc
// @Summary  Register a vehicle
// @Tags     vehicles
// @Accept   json
// @Produce  json
// @Param    payload body request.VehicleRequest true "vehicle"
// @Success  201 {object} response.VehicleResponse
// @Failure  400 {object} pkg.HTTPError
// @Failure  409 {object} pkg.HTTPError
// @Security Bearer
// @Router   /vehicles [post]
func (h *VehicleHandler) Create(c *gin.Context) {
	var payload request.VehicleRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond(c, errInvalidPayload)
		return
	}

	v, err := h.usecase.Create(c.Request.Context(), middleware.CurrentUser(c), payload.ToVehicle())
	if err != nil {
		respond(c, mapVehicleError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromVehicle(v))
}

func (h *VehicleHandler) List(c *gin.Context) {
	vs, err := h.usecase.List(c.Request.Context(), entities.VehicleStatus(c.Query("status")))
	if err != nil {
		respond(c, mapVehicleError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromVehicles(vs))
}

func (h *VehicleHandler) Get(c *gin.Context) {
	v, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond(c, mapVehicleError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromVehicle(v))
}

func (h *VehicleHandler) GetByPlate(c *gin.Context) {
	v, err := h.usecase.GetByPlate(c.Request.Context(), c.Param("plate"))
	if err != nil {
		respond(c, mapVehicleError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromVehicle(v))
}

func (h *VehicleHandler) AssignTechnician(c *gin.Context) {
	var payload request.AssignTechnicianRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond(c, errInvalidPayload)
		return
	}

	_, err := h.usecase.AssignTechnician(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), payload.TechnicianID)
	if err != nil {
		respond(c, mapVehicleError(err))
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Técnico asignado correctamente"})
}

func (h *VehicleHandler) UpdateStatus(c *gin.Context) {
	var payload request.StatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond(c, errInvalidPayload)
		return
	}

	if _, err := h.usecase.UpdateStatus(c.Request.Context(), c.Param("id"), entities.VehicleStatus(payload.Status)); err != nil {
		respond(c, mapVehicleError(err))
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Estado actualizado"})
}

func mapVehicleError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrVehicleAlreadyExists):
		return pkg.NewDomainErrorSimple("VEHICLE_ALREADY_EXISTS", "Ya existe un vehículo con esa placa", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidVehicleID), errors.Is(err, usecase.ErrInvalidPlate):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Placa o vehículo inválido", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidVehicle):
		return pkg.NewDomainErrorSimple("INVALID_VEHICLE", "Datos del vehículo incompletos", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidVehicleStatus):
		return pkg.NewDomainErrorSimple("INVALID_STATUS", "Estado de vehículo inválido", http.StatusBadRequest)
	default:
		return mapCommonError(err)
	}
}
