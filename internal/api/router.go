package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/optourism/firenzecard-backend-go/internal/handler"
	"github.com/optourism/firenzecard-backend-go/internal/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Analysis      *handler.AnalysisHandler
	Museums       *handler.MuseumHandler
	Visualization *handler.VisualizationHandler
}

// SetupRouter wires the middleware stack and the /api/v1 routes.
func SetupRouter(h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "FirenzeCard Analysis API is running",
		})
	})

	api := r.Group("/api/v1")
	{
		museums := api.Group("/museums")
		{
			museums.GET("", h.Museums.ListMuseums)
			museums.GET("/national", h.Museums.ListNationalVisits)
			museums.GET("/:id", h.Museums.GetMuseum)
		}

		analysis := api.Group("/analysis")
		{
			analysis.POST("/features/extract", h.Analysis.ExtractFeatures)
			analysis.GET("/entries", h.Analysis.GetEntries)
			analysis.GET("/correlation", h.Analysis.GetCorrelation)
			analysis.GET("/timelines", h.Analysis.GetTimelines)
			analysis.GET("/comparison/monthly", h.Analysis.GetMonthlyComparison)
		}

		viz := api.Group("/viz")
		{
			viz.GET("/museum-totals", h.Visualization.GetMuseumTotals)
			viz.GET("/museums-per-card", h.Visualization.GetMuseumsPerCard)
			viz.GET("/activation-day", h.Visualization.GetActivationDays)
			viz.GET("/geomap", h.Visualization.GetGeoMap)
		}
	}

	return r
}
