package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/optourism/firenzecard-backend-go/internal/service"
	"github.com/optourism/firenzecard-backend-go/pkg/response"
)

// VisualizationHandler handles HTTP requests for chart-ready payloads
type VisualizationHandler struct {
	vizService *service.VisualizationService
}

// NewVisualizationHandler creates a new visualization handler
func NewVisualizationHandler(vizService *service.VisualizationService) *VisualizationHandler {
	return &VisualizationHandler{
		vizService: vizService,
	}
}

// GetMuseumTotals handles GET /api/v1/viz/museum-totals
func (h *VisualizationHandler) GetMuseumTotals(c *gin.Context) {
	totals, err := h.vizService.MuseumTotals()
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, totals)
}

// GetMuseumsPerCard handles GET /api/v1/viz/museums-per-card
func (h *VisualizationHandler) GetMuseumsPerCard(c *gin.Context) {
	histogram, err := h.vizService.MuseumsPerCard()
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, histogram)
}

// GetActivationDays handles GET /api/v1/viz/activation-day
func (h *VisualizationHandler) GetActivationDays(c *gin.Context) {
	days, err := h.vizService.ActivationDays()
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, days)
}

// GetGeoMap handles GET /api/v1/viz/geomap
func (h *VisualizationHandler) GetGeoMap(c *gin.Context) {
	date, err := time.Parse(dateLayout, c.Query("date"))
	if err != nil {
		response.BadRequest(c, "Invalid date parameter, expected YYYY-MM-DD")
		return
	}

	hourMin, err := parseInt(c, "hourMin", 7)
	if err != nil {
		response.BadRequest(c, "Invalid hourMin parameter")
		return
	}
	hourMax, err := parseInt(c, "hourMax", 23)
	if err != nil {
		response.BadRequest(c, "Invalid hourMax parameter")
		return
	}

	markers, err := h.vizService.GeoMap(date, hourMin, hourMax)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, markers)
}
