package handlers

import (
	"errors"
	"fmt"
	"net/http"

	request "polarizados_ya/internal/adapter/http/dto/request"
	response "polarizados_ya/internal/adapter/http/dto/response"
	"polarizados_ya/internal/adapter/http/middleware"
	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/internal/infrastructure/storage"
	"polarizados_ya/internal/usecase"
	"polarizados_ya/pkg"

	"github.com/gin-gonic/gin"
)

// InspectionHandler handles 360 check-in inspections.
type InspectionHandler struct {
	usecase usecase.IInspectionUseCase
}

func NewInspectionHandler(uc usecase.IInspectionUseCase) *InspectionHandler {
	return &InspectionHandler{usecase: uc}
}

// Create godoc
// @Summary  Submit a 360 inspection
// @Tags     inspections
// @Accept   json
// @Produce  json
// @Param    payload body request.InspectionRequest true "inspection with base64 JPEG photos"
// @Success  201 {object} response.InspectionResponse
// @Failure  400 {object} pkg.HTTPError
// @Failure  404 {object} pkg.HTTPError
// @Security Bearer
// @Router   /inspections [post]
func (h *InspectionHandler) Create(c *gin.Context) {
	var payload request.InspectionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond(c, errInvalidPayload)
		return
	}

	i, err := h.usecase.Create(c.Request.Context(), middleware.CurrentUser(c), payload.ToInput())
	if err != nil {
		respond(c, mapInspectionError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromInspection(i))
}

func (h *InspectionHandler) ListByVehicle(c *gin.Context) {
	is, err := h.usecase.ListByVehicle(c.Request.Context(), c.Param("vehicle_id"))
	if err != nil {
		respond(c, mapInspectionError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromInspections(is))
}

func mapInspectionError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, entities.ErrMissingArea):
		return pkg.NewDomainErrorSimple("INVALID_INSPECTION", "Faltan áreas por inspeccionar", http.StatusBadRequest)
	case errors.Is(err, entities.ErrUnknownArea), errors.Is(err, entities.ErrDuplicateArea):
		return pkg.NewDomainErrorSimple("INVALID_INSPECTION", "Área de inspección inválida o repetida", http.StatusBadRequest)
	case errors.Is(err, entities.ErrInvalidCondition):
		return pkg.NewDomainErrorSimple("INVALID_INSPECTION", "Condición inválida", http.StatusBadRequest)
	case errors.Is(err, entities.ErrMissingDamageNote):
		return pkg.NewDomainErrorSimple("INVALID_INSPECTION", "Describe el daño de cada área marcada", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrTooManyPhotos):
		return pkg.NewDomainErrorSimple("TOO_MANY_PHOTOS", fmt.Sprintf("Máximo %d fotos por inspección", usecase.MaxInspectionPhotos), http.StatusBadRequest)
	case errors.Is(err, storage.ErrInvalidPhoto):
		return pkg.NewDomainErrorSimple("INVALID_PHOTO", "Las fotos deben ser imágenes JPEG", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidVehicleID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Selecciona un vehículo", http.StatusBadRequest)
	default:
		return mapCommonError(err)
	}
}
