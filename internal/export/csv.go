// Package export materializes intermediate analysis frames as CSV
// snapshots. Paths are the caller-supplied prefix plus a fixed suffix naming
// the stage, so successive runs of the same stage overwrite in place.
package export

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/optourism/firenzecard-backend-go/internal/features"
	"github.com/optourism/firenzecard-backend-go/internal/models"
)

// Stage suffixes.
const (
	SuffixVisitsRaw        = "_firenzedata_raw.csv"
	SuffixLocations        = "_firenzedata_locations.csv"
	SuffixNationalRaw      = "_nationalmuseums_raw.csv"
	SuffixFeatureExtracted = "_firenzedata_feature_extracted.csv"
)

// Exporter writes stage snapshots under a path prefix. A nil Exporter or an
// empty prefix disables export; every Write* becomes a no-op.
type Exporter struct {
	prefix string
}

// New creates an exporter for a path prefix.
func New(prefix string) *Exporter {
	return &Exporter{prefix: prefix}
}

// Enabled reports whether snapshots will actually be written.
func (e *Exporter) Enabled() bool {
	return e != nil && e.prefix != ""
}

// WriteVisitsRaw persists the raw swipe logs.
func (e *Exporter) WriteVisitsRaw(visits []models.VisitRecord) error {
	if !e.Enabled() {
		return nil
	}
	records := [][]string{{"user_id", "museum_id", "museum_name", "entry_time", "total_adults", "minors"}}
	for _, v := range visits {
		user := ""
		if v.UserID != nil {
			user = *v.UserID
		}
		records = append(records, []string{
			user,
			strconv.Itoa(v.MuseumID),
			v.MuseumName,
			v.EntryTime.Format("2006-01-02 15:04:05"),
			strconv.Itoa(v.TotalAdults),
			strconv.Itoa(v.Minors),
		})
	}
	return e.writeFrame(e.prefix+SuffixVisitsRaw, records)
}

// WriteLocations persists the museum location metadata.
func (e *Exporter) WriteLocations(locations []models.MuseumLocation) error {
	if !e.Enabled() {
		return nil
	}
	records := [][]string{{"museum_id", "museum_name", "short_name", "latitude", "longitude"}}
	for _, m := range locations {
		records = append(records, []string{
			strconv.Itoa(m.MuseumID),
			m.MuseumName,
			m.ShortName,
			formatFloat(m.Latitude),
			formatFloat(m.Longitude),
		})
	}
	return e.writeFrame(e.prefix+SuffixLocations, records)
}

// WriteNationalRaw persists the state museum comparison table.
func (e *Exporter) WriteNationalRaw(visits []models.NationalMuseumVisit) error {
	if !e.Enabled() {
		return nil
	}
	records := [][]string{{"museum_id", "visit_month", "total_visitors"}}
	for _, v := range visits {
		records = append(records, []string{
			strconv.Itoa(v.MuseumID),
			v.VisitMonth,
			strconv.Itoa(v.TotalVisitors),
		})
	}
	return e.writeFrame(e.prefix+SuffixNationalRaw, records)
}

// WriteFeatures persists the feature-extracted frame, one-hot columns
// included.
func (e *Exporter) WriteFeatures(result *features.ExtractResult) error {
	if !e.Enabled() {
		return nil
	}

	header := []string{
		"museum_id", "museum_name", "short_name", "latitude", "longitude",
		"user_id", "entry_time", "date", "time", "hour", "day_of_week",
		"total_adults", "minors", "total_people",
		"time_since_previous_museum", "total_duration_card_use",
		"entry_is_adult", "is_card_with_minors", "entrances_per_card_per_museum",
	}
	for _, id := range result.IndicatorIDs {
		header = append(header, fmt.Sprintf("is_in_museum_%d", id))
	}

	records := [][]string{header}
	for i := range result.Rows {
		r := &result.Rows[i]
		user := ""
		if r.UserID != nil {
			user = *r.UserID
		}
		row := []string{
			strconv.Itoa(r.MuseumID), r.MuseumName, r.ShortName,
			formatFloat(r.Latitude), formatFloat(r.Longitude),
			user,
			r.EntryTime.Format("2006-01-02 15:04:05"),
			r.Date, r.Time,
			strconv.Itoa(r.Hour), strconv.Itoa(r.DayOfWeek),
			strconv.Itoa(r.TotalAdults), strconv.Itoa(r.Minors), strconv.Itoa(r.TotalPeople),
			formatNullableFloat(r.TimeSincePreviousMuseum),
			formatNullableFloat(r.TotalDurationCardUse),
			strconv.Itoa(r.EntryIsAdult), strconv.Itoa(r.IsCardWithMinors),
			strconv.Itoa(r.EntrancesPerCardPerMuseum),
		}
		for _, id := range result.IndicatorIDs {
			row = append(row, strconv.Itoa(r.IsInMuseum[id]))
		}
		records = append(records, row)
	}
	return e.writeFrame(e.prefix+SuffixFeatureExtracted, records)
}

// WriteEntries persists one museum's interpolated entry series.
func (e *Exporter) WriteEntries(museumName string, g models.Granularity, points []models.TimeSeriesPoint) error {
	if !e.Enabled() {
		return nil
	}
	records := [][]string{{"museum_id", "short_name", string(g), "total_entries"}}
	for _, p := range points {
		records = append(records, []string{
			strconv.Itoa(p.MuseumID),
			p.ShortName,
			p.Bucket,
			formatFloat(p.TotalEntries),
		})
	}
	path := fmt.Sprintf("%s_total_entries_%s_per_%s_.csv", e.prefix, museumName, g)
	return e.writeFrame(path, records)
}

// WriteCorrelation persists the stacked correlation matrix.
func (e *Exporter) WriteCorrelation(g models.Granularity, pairs []models.CorrelationPair) error {
	if !e.Enabled() {
		return nil
	}
	records := [][]string{{"museum_a", "museum_b", "coefficient"}}
	for _, p := range pairs {
		records = append(records, []string{
			strconv.Itoa(p.MuseumA),
			strconv.Itoa(p.MuseumB),
			formatFloat(p.Coefficient),
		})
	}
	path := fmt.Sprintf("%s_correlated_museums_%s_.csv", e.prefix, g)
	return e.writeFrame(path, records)
}

func (e *Exporter) writeFrame(path string, records [][]string) error {
	df := dataframe.LoadRecords(records, dataframe.DetectTypes(false), dataframe.DefaultType(series.String))
	if df.Err != nil {
		return fmt.Errorf("failed to build export frame for %s: %w", path, df.Err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file %s: %w", path, err)
	}
	defer f.Close()

	if err := df.WriteCSV(f); err != nil {
		return fmt.Errorf("failed to write export file %s: %w", path, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatNullableFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
