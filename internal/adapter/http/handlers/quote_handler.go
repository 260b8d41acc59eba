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

// QuoteHandler handles HTTP requests for quotes.
type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
}

func NewQuoteHandler(uc usecase.IQuoteUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc}
}

// Create godoc
// @Summary  Create a quote
// @Tags     quotes
// @Accept   json
// @Produce  json
// @Param    payload body request.QuoteRequest true "quote"
// @Success  201 {object} response.QuoteResponse
// @Failure  400 {object} pkg.HTTPError
// @Security Bearer
// @Router   /quotes [post]
func (h *QuoteHandler) Create(c *gin.Context) {
	var payload request.QuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond(c, errInvalidPayload)
		return
	}

	q, err := h.usecase.Create(c.Request.Context(), middleware.CurrentUser(c), payload.ToInput())
	if err != nil {
		respond(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromQuote(q))
}

func (h *QuoteHandler) List(c *gin.Context) {
	qs, err := h.usecase.List(c.Request.Context())
	if err != nil {
		respond(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuotes(qs))
}

func (h *QuoteHandler) Get(c *gin.Context) {
	q, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

// Approve godoc
// @Summary  Approve a pending quote
// @Tags     quotes
// @Produce  json
// @Param    id               path  string true  "quote id"
// @Param    signature_url    query string false "client signature"
// @Param    cedula_photo_url query string false "client id photo"
// @Success  200 {object} response.QuoteResponse
// @Failure  409 {object} pkg.HTTPError
// @Security Bearer
// @Router   /quotes/{id}/approve [put]
func (h *QuoteHandler) Approve(c *gin.Context) {
	q, err := h.usecase.Approve(c.Request.Context(), c.Param("id"), c.Query("signature_url"), c.Query("cedula_photo_url"))
	if err != nil {
		respond(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

func mapQuoteError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Cotización no encontrada", http.StatusNotFound)
	case errors.Is(err, usecase.ErrQuoteNotPending):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_PENDING", "La cotización ya fue aprobada", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidQuoteID), errors.Is(err, usecase.ErrInvalidVehicleID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Datos inválidos", http.StatusBadRequest)
	case errors.Is(err, entities.ErrInvalidQuoteItem):
		return pkg.NewDomainErrorSimple("INVALID_QUOTE_ITEM", "Cada ítem necesita precio y cantidad positivos", http.StatusBadRequest)
	default:
		return mapCommonError(err)
	}
}
