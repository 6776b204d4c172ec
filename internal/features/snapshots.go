package features

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/optourism/firenzecard-backend-go/internal/errs"
	"github.com/optourism/firenzecard-backend-go/internal/models"
)

// Column sets required of CSV snapshots. Extraction cannot run without the
// (museum_id, museum_name) join keys on both sides.
var (
	visitColumns    = []string{"user_id", "museum_id", "museum_name", "entry_time", "total_adults", "minors"}
	locationColumns = []string{"museum_id", "museum_name", "short_name", "latitude", "longitude"}
)

// LoadVisitsCSV reads a previously exported swipe-log snapshot. Missing
// required columns produce a DataError.
func LoadVisitsCSV(r io.Reader) ([]models.VisitRecord, error) {
	df := dataframe.ReadCSV(r, dataframe.DetectTypes(false), dataframe.DefaultType(series.String))
	if df.Err != nil {
		return nil, fmt.Errorf("failed to read visits csv: %w", df.Err)
	}
	if err := requireColumns("visits", df, visitColumns); err != nil {
		return nil, err
	}

	userIDs := df.Col("user_id").Records()
	museumIDs := df.Col("museum_id").Records()
	museumNames := df.Col("museum_name").Records()
	entryTimes := df.Col("entry_time").Records()
	adults := df.Col("total_adults").Records()
	minors := df.Col("minors").Records()

	visits := make([]models.VisitRecord, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		v := models.VisitRecord{
			ID:         int64(i + 1),
			MuseumName: museumNames[i],
		}
		if userIDs[i] != "" && userIDs[i] != "NaN" {
			id := userIDs[i]
			v.UserID = &id
		}

		var err error
		if v.MuseumID, err = strconv.Atoi(museumIDs[i]); err != nil {
			return nil, fmt.Errorf("row %d: bad museum_id %q: %w", i, museumIDs[i], err)
		}
		if v.EntryTime, err = parseSnapshotTime(entryTimes[i]); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if v.TotalAdults, err = atoiLoose(adults[i]); err != nil {
			return nil, fmt.Errorf("row %d: bad total_adults %q: %w", i, adults[i], err)
		}
		if v.Minors, err = atoiLoose(minors[i]); err != nil {
			return nil, fmt.Errorf("row %d: bad minors %q: %w", i, minors[i], err)
		}

		visits = append(visits, v)
	}
	return visits, nil
}

// LoadLocationsCSV reads a previously exported museum-location snapshot.
func LoadLocationsCSV(r io.Reader) ([]models.MuseumLocation, error) {
	df := dataframe.ReadCSV(r, dataframe.DetectTypes(false), dataframe.DefaultType(series.String))
	if df.Err != nil {
		return nil, fmt.Errorf("failed to read locations csv: %w", df.Err)
	}
	if err := requireColumns("locations", df, locationColumns); err != nil {
		return nil, err
	}

	museumIDs := df.Col("museum_id").Records()
	museumNames := df.Col("museum_name").Records()
	shortNames := df.Col("short_name").Records()
	lats := df.Col("latitude").Records()
	lons := df.Col("longitude").Records()

	locations := make([]models.MuseumLocation, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		m := models.MuseumLocation{
			MuseumName: museumNames[i],
			ShortName:  shortNames[i],
		}

		var err error
		if m.MuseumID, err = strconv.Atoi(museumIDs[i]); err != nil {
			return nil, fmt.Errorf("row %d: bad museum_id %q: %w", i, museumIDs[i], err)
		}
		if m.Latitude, err = strconv.ParseFloat(lats[i], 64); err != nil {
			return nil, fmt.Errorf("row %d: bad latitude %q: %w", i, lats[i], err)
		}
		if m.Longitude, err = strconv.ParseFloat(lons[i], 64); err != nil {
			return nil, fmt.Errorf("row %d: bad longitude %q: %w", i, lons[i], err)
		}

		locations = append(locations, m)
	}
	return locations, nil
}

func requireColumns(source string, df dataframe.DataFrame, required []string) error {
	have := make(map[string]bool, len(df.Names()))
	for _, n := range df.Names() {
		have[n] = true
	}

	var missing []string
	for _, c := range required {
		if !have[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &errs.DataError{Source: source, Missing: missing}
	}
	return nil
}

func parseSnapshotTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
		"2006-01-02",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable entry_time %q", s)
}

// atoiLoose accepts integers that a float-typed export rendered as "2.0".
func atoiLoose(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
