package handlers

import (
	"net/http"

	response "polarizados_ya/internal/adapter/http/dto/response"
	"polarizados_ya/internal/usecase"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	usecase usecase.IDashboardUseCase
}

func NewDashboardHandler(uc usecase.IDashboardUseCase) *DashboardHandler {
	return &DashboardHandler{usecase: uc}
}

// Stats godoc
// @Summary  Home screen counters for today
// @Tags     dashboard
// @Produce  json
// @Success  200 {object} response.DashboardStatsResponse
// @Security Bearer
// @Router   /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.usecase.Stats(c.Request.Context())
	if err != nil {
		respond(c, mapCommonError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromDashboardStats(stats))
}
