package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/optourism/firenzecard-backend-go/internal/config"
	"github.com/optourism/firenzecard-backend-go/internal/models"
	"github.com/optourism/firenzecard-backend-go/internal/service"
	"github.com/optourism/firenzecard-backend-go/pkg/response"
)

const dateLayout = "2006-01-02"

// AnalysisHandler handles HTTP requests for the analysis pipeline
type AnalysisHandler struct {
	analysisService *service.AnalysisService
	cfg             *config.Config
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisService *service.AnalysisService, cfg *config.Config) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		cfg:             cfg,
	}
}

// ExtractFeatures handles POST /api/v1/analysis/features/extract
func (h *AnalysisHandler) ExtractFeatures(c *gin.Context) {
	exportCSV := c.DefaultQuery("export", "false") == "true"

	result, err := h.analysisService.ExtractFeatures(exportCSV)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, gin.H{
		"rows":         len(result.Rows),
		"indicatorIds": result.IndicatorIDs,
		"exported":     exportCSV,
	})
}

// GetEntries handles GET /api/v1/analysis/entries
func (h *AnalysisHandler) GetEntries(c *gin.Context) {
	window, err := parseWindow(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	granularity := models.Granularity(c.DefaultQuery("granularity", string(models.GranularityDate)))
	if granularity == models.GranularityDate && window.IsZero() {
		response.BadRequest(c, "date granularity requires start and end dates")
		return
	}

	req := service.EntriesRequest{
		Names:       splitNames(c.Query("names")),
		Granularity: granularity,
		Window:      window,
		Export:      c.DefaultQuery("export", "false") == "true",
	}

	result, err := h.analysisService.EntriesPerGranularity(req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, result)
}

// GetCorrelation handles GET /api/v1/analysis/correlation
func (h *AnalysisHandler) GetCorrelation(c *gin.Context) {
	window, err := parseWindow(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	above, err := parseFloat(c, "above", h.cfg.CorrAbove)
	if err != nil {
		response.BadRequest(c, "Invalid above parameter")
		return
	}
	below, err := parseFloat(c, "below", h.cfg.CorrBelow)
	if err != nil {
		response.BadRequest(c, "Invalid below parameter")
		return
	}

	allowIDs, err := parseIntList(c.Query("ids"))
	if err != nil {
		response.BadRequest(c, "Invalid ids parameter")
		return
	}

	granularity := models.Granularity(c.DefaultQuery("granularity", string(models.GranularityDate)))
	if granularity == models.GranularityDate && window.IsZero() {
		response.BadRequest(c, "date granularity requires start and end dates")
		return
	}

	req := service.CorrelationRequest{
		Granularity: granularity,
		Method:      c.Query("method"),
		Above:       above,
		Below:       below,
		AllowIDs:    allowIDs,
		Window:      window,
		Export:      c.DefaultQuery("export", "false") == "true",
	}
	if req.BucketMin, err = parseOptionalInt(c.Query("minBucket")); err != nil {
		response.BadRequest(c, "Invalid minBucket parameter")
		return
	}
	if req.BucketMax, err = parseOptionalInt(c.Query("maxBucket")); err != nil {
		response.BadRequest(c, "Invalid maxBucket parameter")
		return
	}

	result, err := h.analysisService.CorrelationMatrix(req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, result)
}

// GetTimelines handles GET /api/v1/analysis/timelines
func (h *AnalysisHandler) GetTimelines(c *gin.Context) {
	window, err := parseWindow(c)
	if err != nil {
		response.BadRequest(c, err.Error())
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

	timelines, err := h.analysisService.UsageTimelines(hourMin, hourMax, window)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, timelines)
}

// GetMonthlyComparison handles GET /api/v1/analysis/comparison/monthly
func (h *AnalysisHandler) GetMonthlyComparison(c *gin.Context) {
	window, err := parseWindow(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if window.IsZero() {
		response.BadRequest(c, "monthly comparison requires start and end dates")
		return
	}
	exportCSV := c.DefaultQuery("export", "false") == "true"

	comparison, err := h.analysisService.MonthlyComparison(window, exportCSV)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, comparison)
}

// parseWindow reads the optional start/end query params as calendar dates.
// Either both are supplied or neither.
func parseWindow(c *gin.Context) (models.DateWindow, error) {
	var window models.DateWindow

	start, end := c.Query("start"), c.Query("end")
	if (start == "") != (end == "") {
		return window, fmt.Errorf("start and end must be supplied together")
	}
	if start == "" {
		return window, nil
	}

	var err error
	if window.Start, err = time.Parse(dateLayout, start); err != nil {
		return window, fmt.Errorf("invalid start date %q, expected YYYY-MM-DD", start)
	}
	if window.End, err = time.Parse(dateLayout, end); err != nil {
		return window, fmt.Errorf("invalid end date %q, expected YYYY-MM-DD", end)
	}
	return window, nil
}

func splitNames(raw string) []string {
	if raw == "" {
		return nil
	}
	var names []string
	for _, n := range strings.Split(raw, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

func parseFloat(c *gin.Context, key string, fallback float64) (float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(raw, 64)
}

func parseInt(c *gin.Context, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func parseOptionalInt(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseIntList(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}
	var ids []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
