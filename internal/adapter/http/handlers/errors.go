package handlers

import (
	"context"
	"errors"
	"net/http"

	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/internal/infrastructure/logger"
	"polarizados_ya/internal/usecase"
	"polarizados_ya/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	errInvalidPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Datos inválidos", http.StatusBadRequest)
	errAccessDenied   = pkg.NewDomainErrorSimple("FORBIDDEN", "Acceso denegado", http.StatusForbidden)
	errUnauthorized   = pkg.NewDomainErrorSimple("UNAUTHORIZED", "No autenticado", http.StatusUnauthorized)
)

func respond(c *gin.Context, appErr *pkg.AppError) {
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.WithContext(c.Request.Context()).Error("[http][handler] request failed",
			zap.String("code", appErr.Code), zap.Error(appErr))
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// mapCommonError covers the errors every resource shares: authorization, the
// service catalog, the status pipeline and deadlines. Anything else is internal.
func mapCommonError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrForbidden):
		return errAccessDenied
	case errors.Is(err, usecase.ErrUnauthenticated):
		return errUnauthorized
	case errors.Is(err, entities.ErrNoServices):
		return pkg.NewDomainErrorSimple("INVALID_SERVICES", "Selecciona al menos un servicio", http.StatusBadRequest)
	case errors.Is(err, entities.ErrUnknownService):
		return pkg.NewDomainErrorSimple("INVALID_SERVICES", "Servicio desconocido", http.StatusBadRequest)
	case errors.Is(err, entities.ErrDuplicateService):
		return pkg.NewDomainErrorSimple("INVALID_SERVICES", "Servicio repetido", http.StatusBadRequest)
	case errors.Is(err, entities.ErrUnknownStatus):
		return pkg.NewDomainErrorSimple("INVALID_STATUS", "Estado inválido", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrVehicleNotFound):
		return pkg.NewDomainErrorSimple("VEHICLE_NOT_FOUND", "Vehículo no encontrado", http.StatusNotFound)
	case errors.Is(err, usecase.ErrTechnicianNotFound):
		return pkg.NewDomainErrorSimple("TECHNICIAN_NOT_FOUND", "Técnico no encontrado", http.StatusNotFound)
	case errors.Is(err, context.DeadlineExceeded):
		return pkg.NewDomainError("REQUEST_TIMEOUT", "La solicitud excedió el tiempo de espera", err, http.StatusGatewayTimeout)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
