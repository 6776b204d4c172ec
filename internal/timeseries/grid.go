// Package timeseries reindexes sparse bucketed counts onto complete,
// regularly-spaced time grids so that zero-activity buckets are represented
// rather than silently absent.
package timeseries

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/optourism/firenzecard-backend-go/internal/errs"
	"github.com/optourism/firenzecard-backend-go/internal/models"
)

// BucketDomain returns the full, ordered bucket domain for a granularity:
// "0".."6" for day-of-week, "0".."23" for hour, every calendar day in the
// window for date granularity.
func BucketDomain(g models.Granularity, window models.DateWindow) ([]string, error) {
	switch g {
	case models.GranularityDayOfWeek:
		return intBuckets(7), nil
	case models.GranularityHour:
		return intBuckets(24), nil
	case models.GranularityDate:
		if window.Start.IsZero() || window.End.IsZero() {
			return nil, fmt.Errorf("date granularity requires a start and end date")
		}
		if window.End.Before(window.Start) {
			return nil, fmt.Errorf("end date %s precedes start date %s",
				window.End.Format("2006-01-02"), window.Start.Format("2006-01-02"))
		}
		days := window.Days()
		buckets := make([]string, len(days))
		for i, d := range days {
			buckets[i] = d.Format("2006-01-02")
		}
		return buckets, nil
	default:
		return nil, invalidGranularity(g)
	}
}

// Interpolate reindexes points onto the full bucket domain: the output holds
// every (observed museum, domain bucket) combination exactly once, with
// unobserved cells at zero. Observed counts for the same cell are summed.
// Output is ordered by museum id, then domain order.
func Interpolate(points []models.TimeSeriesPoint, g models.Granularity, window models.DateWindow) ([]models.TimeSeriesPoint, error) {
	domain, err := BucketDomain(g, window)
	if err != nil {
		return nil, err
	}

	type key struct {
		museumID  int
		shortName string
	}
	counts := make(map[key]map[string]float64)
	for _, p := range points {
		k := key{p.MuseumID, p.ShortName}
		if counts[k] == nil {
			counts[k] = make(map[string]float64, len(domain))
		}
		counts[k][p.Bucket] += p.TotalEntries
	}

	keys := make([]key, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].museumID != keys[j].museumID {
			return keys[i].museumID < keys[j].museumID
		}
		return keys[i].shortName < keys[j].shortName
	})

	out := make([]models.TimeSeriesPoint, 0, len(keys)*len(domain))
	for _, k := range keys {
		for _, b := range domain {
			out = append(out, models.TimeSeriesPoint{
				MuseumID:     k.museumID,
				ShortName:    k.shortName,
				Bucket:       b,
				TotalEntries: counts[k][b],
			})
		}
	}
	return out, nil
}

// BucketOf returns the bucket value of a feature row under a granularity.
func BucketOf(f *models.VisitFeatures, g models.Granularity) (string, error) {
	switch g {
	case models.GranularityDayOfWeek:
		return strconv.Itoa(f.DayOfWeek), nil
	case models.GranularityHour:
		return strconv.Itoa(f.Hour), nil
	case models.GranularityDate:
		return f.Date, nil
	default:
		return "", invalidGranularity(g)
	}
}

func intBuckets(n int) []string {
	buckets := make([]string, n)
	for i := 0; i < n; i++ {
		buckets[i] = strconv.Itoa(i)
	}
	return buckets
}

func invalidGranularity(g models.Granularity) error {
	allowed := make([]string, 0, 3)
	for _, a := range models.Granularities() {
		allowed = append(allowed, string(a))
	}
	return &errs.InvalidGranularityError{Requested: string(g), Allowed: allowed}
}
