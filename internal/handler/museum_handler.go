package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/optourism/firenzecard-backend-go/internal/repository"
	"github.com/optourism/firenzecard-backend-go/internal/service"
	"github.com/optourism/firenzecard-backend-go/pkg/response"
)

// MuseumHandler handles HTTP requests for museum metadata
type MuseumHandler struct {
	museums         *repository.MuseumRepository
	analysisService *service.AnalysisService
}

// NewMuseumHandler creates a new museum handler
func NewMuseumHandler(museums *repository.MuseumRepository, analysisService *service.AnalysisService) *MuseumHandler {
	return &MuseumHandler{
		museums:         museums,
		analysisService: analysisService,
	}
}

// ListMuseums handles GET /api/v1/museums
func (h *MuseumHandler) ListMuseums(c *gin.Context) {
	locations, err := h.museums.GetLocations()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, locations)
}

// GetMuseum handles GET /api/v1/museums/:id
func (h *MuseumHandler) GetMuseum(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid museum id")
		return
	}

	location, err := h.museums.GetLocationByID(id)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if location == nil {
		response.NotFound(c, "Museum not found")
		return
	}
	response.Success(c, location)
}

// ListNationalVisits handles GET /api/v1/museums/national
func (h *MuseumHandler) ListNationalVisits(c *gin.Context) {
	visits, err := h.analysisService.NationalVisits()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, visits)
}
