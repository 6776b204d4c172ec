package service

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/optourism/firenzecard-backend-go/internal/export"
	"github.com/optourism/firenzecard-backend-go/internal/features"
	"github.com/optourism/firenzecard-backend-go/internal/models"
	"github.com/optourism/firenzecard-backend-go/internal/repository"
	"github.com/optourism/firenzecard-backend-go/internal/spatial"
	"github.com/optourism/firenzecard-backend-go/internal/stats"
	"github.com/optourism/firenzecard-backend-go/internal/timeseries"
)

// AllMuseums is the implicit aggregate series name added to every
// entries-per-granularity request.
const AllMuseums = "All Museums"

// comparisonMonths is the summer window the state museum table covers.
var comparisonMonths = []string{"June", "July", "August", "September"}

// AnalysisService orchestrates the analysis pipeline: feature extraction,
// time-grid interpolation, aggregation and correlation.
type AnalysisService struct {
	visits   *repository.VisitRepository
	museums  *repository.MuseumRepository
	national *repository.NationalRepository
	exporter *export.Exporter
}

// NewAnalysisService creates a new analysis service. exporter may be nil to
// disable CSV materialization.
func NewAnalysisService(
	visits *repository.VisitRepository,
	museums *repository.MuseumRepository,
	national *repository.NationalRepository,
	exporter *export.Exporter,
) *AnalysisService {
	return &AnalysisService{
		visits:   visits,
		museums:  museums,
		national: national,
		exporter: exporter,
	}
}

// ExtractFeatures runs feature extraction over the full log, optionally
// materializing the raw and extracted frames.
func (s *AnalysisService) ExtractFeatures(exportCSV bool) (*features.ExtractResult, error) {
	visits, err := s.visits.GetVisits(models.VisitFilter{})
	if err != nil {
		return nil, err
	}
	locations, err := s.museums.GetLocations()
	if err != nil {
		return nil, err
	}

	if exportCSV {
		if err := s.exporter.WriteVisitsRaw(visits); err != nil {
			return nil, err
		}
		if err := s.exporter.WriteLocations(locations); err != nil {
			return nil, err
		}
	}

	result, err := features.Extract(visits, locations)
	if err != nil {
		return nil, err
	}

	if exportCSV {
		if err := s.exporter.WriteFeatures(result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// EntriesRequest parameterizes the entries-per-granularity operation.
type EntriesRequest struct {
	Names       []string
	Granularity models.Granularity
	Window      models.DateWindow
	Export      bool
}

// EntriesPerGranularity builds one interpolated, re-aggregated entry series
// per requested museum name plus the implicit "All Museums" aggregate.
// Unrecognized names are reported and skipped, never fatal.
func (s *AnalysisService) EntriesPerGranularity(req EntriesRequest) (*models.EntriesResult, error) {
	// Validate the granularity before touching any data.
	if _, err := timeseries.BucketDomain(req.Granularity, dateWindowOrDefault(req.Granularity, req.Window)); err != nil {
		return nil, err
	}

	extracted, err := s.ExtractFeatures(false)
	if err != nil {
		return nil, err
	}
	locations, err := s.museums.GetLocations()
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(locations))
	knownList := make([]string, 0, len(locations))
	for _, l := range locations {
		if !known[l.ShortName] {
			known[l.ShortName] = true
			knownList = append(knownList, l.ShortName)
		}
	}

	result := &models.EntriesResult{
		Granularity: req.Granularity,
		Museums:     make(map[string][]models.TimeSeriesPoint),
	}

	names := append(append([]string{}, req.Names...), AllMuseums)
	for _, name := range names {
		if name != AllMuseums && !known[name] {
			log.Printf("invalid museum name %q, known names: %s", name, strings.Join(knownList, ", "))
			result.InvalidNames = append(result.InvalidNames, name)
			continue
		}

		interpolated, err := s.entrancesSeries(extracted.Rows, name, req.Granularity, req.Window)
		if err != nil {
			return nil, err
		}

		if req.Export {
			if err := s.exporter.WriteEntries(name, req.Granularity, interpolated); err != nil {
				return nil, err
			}
		}

		result.Museums[name] = aggregateByBucketAndMuseum(interpolated)
	}
	return result, nil
}

// entrancesSeries filters the feature rows to one museum name (substring
// match on short name, or everything for the aggregate), sums
// entrances_per_card_per_museum by (museum, bucket) and interpolates onto
// the full bucket domain.
func (s *AnalysisService) entrancesSeries(rows []models.VisitFeatures, name string, g models.Granularity, window models.DateWindow) ([]models.TimeSeriesPoint, error) {
	type cell struct {
		museumID  int
		shortName string
		bucket    string
	}
	sums := make(map[cell]float64)
	var order []cell

	for i := range rows {
		r := &rows[i]
		if name != AllMuseums && !strings.Contains(r.ShortName, name) {
			continue
		}
		if !window.Contains(r.EntryTime) {
			continue
		}

		bucket, err := timeseries.BucketOf(r, g)
		if err != nil {
			return nil, err
		}
		c := cell{r.MuseumID, r.ShortName, bucket}
		if _, seen := sums[c]; !seen {
			order = append(order, c)
		}
		sums[c] += float64(r.EntrancesPerCardPerMuseum)
	}

	points := make([]models.TimeSeriesPoint, 0, len(order))
	for _, c := range order {
		points = append(points, models.TimeSeriesPoint{
			MuseumID:     c.museumID,
			ShortName:    c.shortName,
			Bucket:       c.bucket,
			TotalEntries: sums[c],
		})
	}

	return timeseries.Interpolate(points, g, dateWindowOrDefault(g, window))
}

// CorrelationRequest parameterizes the cross-museum correlation operation.
type CorrelationRequest struct {
	Granularity models.Granularity
	Method      string
	Above       float64
	Below       float64
	AllowIDs    []int
	Window      models.DateWindow
	BucketMin   *int
	BucketMax   *int
	Export      bool
}

// CorrelationMatrix pivots the interpolated per-museum entry series to a
// bucket-by-museum grid and computes the pairwise correlation matrix with
// its threshold partitions. Pairs are annotated with the distance between
// the two museums.
func (s *AnalysisService) CorrelationMatrix(req CorrelationRequest) (*models.CorrelationResult, error) {
	method, err := stats.ParseMethod(req.Method)
	if err != nil {
		return nil, err
	}

	extracted, err := s.ExtractFeatures(false)
	if err != nil {
		return nil, err
	}

	interpolated, err := s.entrancesSeries(extracted.Rows, AllMuseums, req.Granularity, req.Window)
	if err != nil {
		return nil, err
	}
	interpolated = subsetBuckets(interpolated, req.BucketMin, req.BucketMax)

	series := pivotByMuseum(interpolated)
	matrix := stats.Matrix(series, method)
	high, inverse := stats.Partition(matrix, req.Above, req.Below, req.AllowIDs)

	if err := s.annotateDistances(matrix); err != nil {
		return nil, err
	}
	if err := s.annotateDistances(high); err != nil {
		return nil, err
	}
	if err := s.annotateDistances(inverse); err != nil {
		return nil, err
	}

	if req.Export {
		if err := s.exporter.WriteCorrelation(req.Granularity, matrix); err != nil {
			return nil, err
		}
	}

	return &models.CorrelationResult{
		Method:      string(method),
		Granularity: req.Granularity,
		Matrix:      matrix,
		High:        high,
		Inverse:     inverse,
	}, nil
}

// UsageTimelines averages the entry counts per bucket across museums, one
// series per granularity. The hourly series is restricted to
// [hourMin, hourMax].
func (s *AnalysisService) UsageTimelines(hourMin, hourMax int, window models.DateWindow) (*models.UsageTimelines, error) {
	extracted, err := s.ExtractFeatures(false)
	if err != nil {
		return nil, err
	}

	perHour, err := s.entrancesSeries(extracted.Rows, AllMuseums, models.GranularityHour, window)
	if err != nil {
		return nil, err
	}
	perHour = filterHourRange(perHour, hourMin, hourMax)

	perDow, err := s.entrancesSeries(extracted.Rows, AllMuseums, models.GranularityDayOfWeek, window)
	if err != nil {
		return nil, err
	}

	timelines := &models.UsageTimelines{
		PerHour:      meanByBucket(perHour),
		PerDayOfWeek: meanByBucket(perDow),
	}

	if !window.IsZero() {
		perDate, err := s.entrancesSeries(extracted.Rows, AllMuseums, models.GranularityDate, window)
		if err != nil {
			return nil, err
		}
		timelines.PerDate = meanByBucket(perDate)
	}
	return timelines, nil
}

// MonthlyComparison rolls FirenzeCard daily totals up per month and lines
// them up against the state museum monthly totals.
func (s *AnalysisService) MonthlyComparison(window models.DateWindow, exportCSV bool) ([]models.MonthlyComparison, error) {
	if window.IsZero() {
		return nil, fmt.Errorf("monthly comparison requires a date window")
	}

	national, err := s.national.GetVisits(comparisonMonths)
	if err != nil {
		return nil, err
	}
	if exportCSV {
		if err := s.exporter.WriteNationalRaw(national); err != nil {
			return nil, err
		}
	}

	stateTotals := make(map[string]int)
	for _, v := range national {
		stateTotals[v.VisitMonth] += v.TotalVisitors
	}

	extracted, err := s.ExtractFeatures(false)
	if err != nil {
		return nil, err
	}
	perDate, err := s.entrancesSeries(extracted.Rows, AllMuseums, models.GranularityDate, window)
	if err != nil {
		return nil, err
	}

	fcTotals := make(map[string]float64)
	for _, p := range perDate {
		day, err := time.Parse("2006-01-02", p.Bucket)
		if err != nil {
			return nil, fmt.Errorf("bad date bucket %q: %w", p.Bucket, err)
		}
		fcTotals[day.Month().String()] += p.TotalEntries
	}

	comparison := make([]models.MonthlyComparison, 0, len(comparisonMonths))
	for _, month := range comparisonMonths {
		comparison = append(comparison, models.MonthlyComparison{
			Month:              month,
			FirenzeCardEntries: fcTotals[month],
			StateEntries:       stateTotals[month],
		})
	}
	return comparison, nil
}

// NationalVisits exposes the raw comparison table.
func (s *AnalysisService) NationalVisits() ([]models.NationalMuseumVisit, error) {
	return s.national.GetVisits(nil)
}

// Locations exposes the museum location metadata.
func (s *AnalysisService) Locations() ([]models.MuseumLocation, error) {
	return s.museums.GetLocations()
}

// annotateDistances fills the great-circle distance between each pair's
// museums.
func (s *AnalysisService) annotateDistances(pairs []models.CorrelationPair) error {
	if len(pairs) == 0 {
		return nil
	}
	locations, err := s.museums.GetLocations()
	if err != nil {
		return err
	}
	byID := make(map[int]models.MuseumLocation, len(locations))
	for _, l := range locations {
		byID[l.MuseumID] = l
	}

	for i := range pairs {
		a, okA := byID[pairs[i].MuseumA]
		b, okB := byID[pairs[i].MuseumB]
		if !okA || !okB {
			continue
		}
		pairs[i].DistanceMeters = spatial.HaversineDistance(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
	}
	return nil
}

// aggregateByBucketAndMuseum re-aggregates an interpolated series to
// (bucket, museum) sums, preserving input order.
func aggregateByBucketAndMuseum(points []models.TimeSeriesPoint) []models.TimeSeriesPoint {
	type cell struct {
		bucket   string
		museumID int
	}
	sums := make(map[cell]float64, len(points))
	var order []cell
	for _, p := range points {
		c := cell{p.Bucket, p.MuseumID}
		if _, seen := sums[c]; !seen {
			order = append(order, c)
		}
		sums[c] += p.TotalEntries
	}

	out := make([]models.TimeSeriesPoint, 0, len(order))
	for _, c := range order {
		out = append(out, models.TimeSeriesPoint{
			MuseumID:     c.museumID,
			Bucket:       c.bucket,
			TotalEntries: sums[c],
		})
	}
	return out
}

// pivotByMuseum turns an interpolated series into aligned per-museum
// vectors. Interpolation guarantees every museum covers the full bucket
// domain, so ordering buckets identically per museum aligns the vectors.
func pivotByMuseum(points []models.TimeSeriesPoint) map[int][]float64 {
	buckets := make(map[string]int)
	var bucketOrder []string
	for _, p := range points {
		if _, seen := buckets[p.Bucket]; !seen {
			buckets[p.Bucket] = len(bucketOrder)
			bucketOrder = append(bucketOrder, p.Bucket)
		}
	}

	series := make(map[int][]float64)
	for _, p := range points {
		if series[p.MuseumID] == nil {
			series[p.MuseumID] = make([]float64, len(bucketOrder))
		}
		series[p.MuseumID][buckets[p.Bucket]] += p.TotalEntries
	}
	return series
}

// meanByBucket averages entry counts across museums per bucket, preserving
// bucket order.
func meanByBucket(points []models.TimeSeriesPoint) []models.TimeSeriesPoint {
	values := make(map[string][]float64)
	var order []string
	for _, p := range points {
		if _, seen := values[p.Bucket]; !seen {
			order = append(order, p.Bucket)
		}
		values[p.Bucket] = append(values[p.Bucket], p.TotalEntries)
	}

	out := make([]models.TimeSeriesPoint, 0, len(order))
	for _, b := range order {
		out = append(out, models.TimeSeriesPoint{
			Bucket:       b,
			TotalEntries: stats.Mean(values[b]),
		})
	}
	return out
}

// filterHourRange keeps hourly points with bucket in [hourMin, hourMax].
func filterHourRange(points []models.TimeSeriesPoint, hourMin, hourMax int) []models.TimeSeriesPoint {
	var out []models.TimeSeriesPoint
	for _, p := range points {
		h, err := strconv.Atoi(p.Bucket)
		if err != nil {
			continue
		}
		if h >= hourMin && h <= hourMax {
			out = append(out, p)
		}
	}
	return out
}

// subsetBuckets keeps numeric buckets in [min, max]; date buckets are left
// untouched (the window already bounds them).
func subsetBuckets(points []models.TimeSeriesPoint, min, max *int) []models.TimeSeriesPoint {
	if min == nil && max == nil {
		return points
	}
	var out []models.TimeSeriesPoint
	for _, p := range points {
		h, err := strconv.Atoi(p.Bucket)
		if err != nil {
			out = append(out, p)
			continue
		}
		if min != nil && h < *min {
			continue
		}
		if max != nil && h > *max {
			continue
		}
		out = append(out, p)
	}
	return out
}

// dateWindowOrDefault passes the window through for date granularity and
// clears it otherwise, since hour/day-of-week domains are fixed.
func dateWindowOrDefault(g models.Granularity, window models.DateWindow) models.DateWindow {
	if g == models.GranularityDate {
		return window
	}
	return models.DateWindow{}
}
