package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optourism/firenzecard-backend-go/internal/database"
	"github.com/optourism/firenzecard-backend-go/internal/errs"
	"github.com/optourism/firenzecard-backend-go/internal/models"
	"github.com/optourism/firenzecard-backend-go/internal/repository"
)

func newTestService(t *testing.T) (*AnalysisService, *sql.DB) {
	t.Helper()
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := NewAnalysisService(
		repository.NewVisitRepository(db),
		repository.NewMuseumRepository(db),
		repository.NewNationalRepository(db),
		nil,
	)
	return svc, db
}

func seedMuseums(t *testing.T, db *sql.DB) {
	t.Helper()
	locations := [][]any{
		{1, "Galleria degli Uffizi", "Uffizi", 43.7678, 11.2559},
		{2, "Galleria dell'Accademia", "Accademia", 43.7768, 11.2590},
		{3, "Palazzo Pitti", "Pitti", 43.7651, 11.2500},
	}
	for _, l := range locations {
		_, err := db.Exec(
			`INSERT INTO firenze_card_locations (museum_id, museum_name, short_name, latitude, longitude)
			 VALUES (?, ?, ?, ?, ?)`,
			l...,
		)
		require.NoError(t, err)
	}
}

func seedLog(t *testing.T, db *sql.DB, user string, museumID int, name, entryTime string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO firenze_card_logs (user_id, museum_id, museum_name, entry_time, total_adults, minors)
		 VALUES (?, ?, ?, ?, 1, 0)`,
		user, museumID, name, entryTime,
	)
	require.NoError(t, err)
}

func seedTypicalWeek(t *testing.T, db *sql.DB) {
	t.Helper()
	seedMuseums(t, db)
	// 2016-07-01 is a Friday.
	seedLog(t, db, "card-1", 1, "Galleria degli Uffizi", "2016-07-01 10:00:00")
	seedLog(t, db, "card-1", 2, "Galleria dell'Accademia", "2016-07-01 14:00:00")
	seedLog(t, db, "card-2", 1, "Galleria degli Uffizi", "2016-07-02 10:00:00")
	seedLog(t, db, "card-2", 3, "Palazzo Pitti", "2016-07-02 15:00:00")
	seedLog(t, db, "card-3", 1, "Galleria degli Uffizi", "2016-07-03 11:00:00")
}

func july(dayNum int) time.Time {
	return time.Date(2016, 7, dayNum, 0, 0, 0, 0, time.UTC)
}

func TestExtractFeaturesFromDB(t *testing.T) {
	svc, db := newTestService(t)
	seedTypicalWeek(t, db)

	result, err := svc.ExtractFeatures(false)
	require.NoError(t, err)
	assert.Len(t, result.Rows, 5)
	assert.Equal(t, []int{1, 2}, result.IndicatorIDs)
}

func TestEntriesPerGranularityHour(t *testing.T) {
	svc, db := newTestService(t)
	seedTypicalWeek(t, db)

	result, err := svc.EntriesPerGranularity(EntriesRequest{
		Granularity: models.GranularityHour,
	})
	require.NoError(t, err)

	all, ok := result.Museums[AllMuseums]
	require.True(t, ok)
	// Three museums, each reindexed to all 24 hours.
	assert.Len(t, all, 3*24)

	var at10 float64
	for _, p := range all {
		if p.Bucket == "10" {
			at10 += p.TotalEntries
		}
	}
	// Two entries at 10:00, one per card, each counted once.
	assert.Equal(t, 2.0, at10)
}

func TestEntriesPerGranularityInvalidName(t *testing.T) {
	svc, db := newTestService(t)
	seedTypicalWeek(t, db)

	result, err := svc.EntriesPerGranularity(EntriesRequest{
		Names:       []string{"Uffizi", "Louvre"},
		Granularity: models.GranularityDayOfWeek,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Louvre"}, result.InvalidNames)
	assert.Contains(t, result.Museums, "Uffizi")
	assert.Contains(t, result.Museums, AllMuseums)
	assert.NotContains(t, result.Museums, "Louvre")

	// Name filter keeps only the matching museum's series.
	for _, p := range result.Museums["Uffizi"] {
		assert.Equal(t, 1, p.MuseumID)
	}
}

func TestEntriesPerGranularityBadGranularity(t *testing.T) {
	svc, db := newTestService(t)
	seedTypicalWeek(t, db)

	_, err := svc.EntriesPerGranularity(EntriesRequest{
		Granularity: models.Granularity("decade"),
	})
	var granErr *errs.InvalidGranularityError
	require.ErrorAs(t, err, &granErr)
}

func TestEntriesPerGranularityDateWindow(t *testing.T) {
	svc, db := newTestService(t)
	seedTypicalWeek(t, db)

	result, err := svc.EntriesPerGranularity(EntriesRequest{
		Granularity: models.GranularityDate,
		Window:      models.DateWindow{Start: july(1), End: july(2)},
	})
	require.NoError(t, err)

	all := result.Museums[AllMuseums]
	for _, p := range all {
		assert.NotEqual(t, "2016-07-03", p.Bucket)
	}

	var total float64
	for _, p := range all {
		total += p.TotalEntries
	}
	// The July 3rd swipe is outside the window.
	assert.Equal(t, 4.0, total)
}

func TestEntriesPerGranularityDateNeedsWindow(t *testing.T) {
	svc, db := newTestService(t)
	seedTypicalWeek(t, db)

	_, err := svc.EntriesPerGranularity(EntriesRequest{
		Granularity: models.GranularityDate,
	})
	require.Error(t, err)
}

func TestCorrelationMatrix(t *testing.T) {
	svc, db := newTestService(t)
	seedMuseums(t, db)

	// Museums 1 and 2 move together, museum 3 moves against them, over four
	// distinct days with varying daily volumes.
	days := []struct {
		date   string
		uffizi int
		acc    int
		pitti  int
	}{
		{"2016-07-01", 1, 1, 4},
		{"2016-07-02", 2, 2, 3},
		{"2016-07-03", 3, 3, 2},
		{"2016-07-04", 4, 4, 1},
	}
	for _, d := range days {
		for i := 0; i < d.uffizi; i++ {
			seedLog(t, db, "u-"+d.date+string(rune('a'+i)), 1, "Galleria degli Uffizi", d.date+" 10:00:00")
		}
		for i := 0; i < d.acc; i++ {
			seedLog(t, db, "a-"+d.date+string(rune('a'+i)), 2, "Galleria dell'Accademia", d.date+" 11:00:00")
		}
		for i := 0; i < d.pitti; i++ {
			seedLog(t, db, "p-"+d.date+string(rune('a'+i)), 3, "Palazzo Pitti", d.date+" 12:00:00")
		}
	}

	result, err := svc.CorrelationMatrix(CorrelationRequest{
		Granularity: models.GranularityDate,
		Above:       0.5,
		Below:       -0.5,
		Window:      models.DateWindow{Start: july(1), End: july(4)},
	})
	require.NoError(t, err)

	assert.Equal(t, "pearson", result.Method)
	// Three museums: six directional pairs.
	assert.Len(t, result.Matrix, 6)

	find := func(pairs []models.CorrelationPair, a, b int) *models.CorrelationPair {
		for i := range pairs {
			if pairs[i].MuseumA == a && pairs[i].MuseumB == b {
				return &pairs[i]
			}
		}
		return nil
	}

	p12 := find(result.High, 1, 2)
	require.NotNil(t, p12)
	assert.InDelta(t, 1.0, p12.Coefficient, 1e-9)
	assert.Greater(t, p12.DistanceMeters, 0.0)

	p13 := find(result.Inverse, 1, 3)
	require.NotNil(t, p13)
	assert.InDelta(t, -1.0, p13.Coefficient, 1e-9)
}

func TestCorrelationMatrixUnknownMethod(t *testing.T) {
	svc, db := newTestService(t)
	seedTypicalWeek(t, db)

	_, err := svc.CorrelationMatrix(CorrelationRequest{
		Granularity: models.GranularityHour,
		Method:      "cosine",
	})
	require.Error(t, err)
}

func TestUsageTimelines(t *testing.T) {
	svc, db := newTestService(t)
	seedTypicalWeek(t, db)

	timelines, err := svc.UsageTimelines(7, 23, models.DateWindow{})
	require.NoError(t, err)

	// Hours 0..6 are trimmed off.
	assert.Len(t, timelines.PerHour, 17)
	assert.Len(t, timelines.PerDayOfWeek, 7)
	assert.Empty(t, timelines.PerDate)

	// Friday (bucket 4) saw two entries across three museums.
	for _, p := range timelines.PerDayOfWeek {
		if p.Bucket == "4" {
			assert.InDelta(t, 2.0/3.0, p.TotalEntries, 1e-9)
		}
	}
}

func TestMonthlyComparison(t *testing.T) {
	svc, db := newTestService(t)
	seedTypicalWeek(t, db)

	_, err := db.Exec(
		`INSERT INTO state_national_museum_visits (museum_id, visit_month, total_visitors) VALUES (1, 'July', 120)`,
	)
	require.NoError(t, err)

	comparison, err := svc.MonthlyComparison(models.DateWindow{Start: july(1), End: july(31)}, false)
	require.NoError(t, err)
	require.Len(t, comparison, 4)

	assert.Equal(t, "June", comparison[0].Month)
	julyRow := comparison[1]
	assert.Equal(t, "July", julyRow.Month)
	assert.Equal(t, 5.0, julyRow.FirenzeCardEntries)
	assert.Equal(t, 120, julyRow.StateEntries)
}

func TestMonthlyComparisonRequiresWindow(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.MonthlyComparison(models.DateWindow{}, false)
	require.Error(t, err)
}
