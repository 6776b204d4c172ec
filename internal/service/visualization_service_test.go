package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMuseumTotals(t *testing.T) {
	svc, db := newTestService(t)
	seedTypicalWeek(t, db)
	viz := NewVisualizationService(svc)

	totals, err := viz.MuseumTotals()
	require.NoError(t, err)
	require.Len(t, totals, 3)

	// Ascending by total: Accademia and Pitti saw one person, Uffizi three.
	assert.Equal(t, "Uffizi", totals[2].ShortName)
	assert.Equal(t, 3, totals[2].TotalPeople)
	for i := 1; i < len(totals); i++ {
		assert.LessOrEqual(t, totals[i-1].TotalPeople, totals[i].TotalPeople)
	}
}

func TestMuseumsPerCard(t *testing.T) {
	svc, db := newTestService(t)
	seedTypicalWeek(t, db)
	viz := NewVisualizationService(svc)

	histogram, err := viz.MuseumsPerCard()
	require.NoError(t, err)

	// card-3 visited one museum, card-1 and card-2 visited two each.
	require.Len(t, histogram, 2)
	assert.Equal(t, 1, histogram[0].Museums)
	assert.Equal(t, 1, histogram[0].Cards)
	assert.Equal(t, 2, histogram[1].Museums)
	assert.Equal(t, 2, histogram[1].Cards)
}

func TestActivationDays(t *testing.T) {
	svc, db := newTestService(t)
	seedTypicalWeek(t, db)
	viz := NewVisualizationService(svc)

	days, err := viz.ActivationDays()
	require.NoError(t, err)
	require.Len(t, days, 7)

	assert.Equal(t, "Monday", days[0].DayName)
	// card-1 activated Friday, card-2 Saturday, card-3 Sunday.
	assert.Equal(t, 1, days[4].Cards)
	assert.Equal(t, 1, days[5].Cards)
	assert.Equal(t, 1, days[6].Cards)
	assert.Zero(t, days[0].Cards)
}

func TestGeoMap(t *testing.T) {
	svc, db := newTestService(t)
	seedTypicalWeek(t, db)
	viz := NewVisualizationService(svc)

	markers, err := viz.GeoMap(july(1), 7, 23)
	require.NoError(t, err)

	// July 1st had one Uffizi entry at 10:00 and one Accademia entry at
	// 14:00; zero-entry hours carry no marker.
	require.Len(t, markers, 2)
	for _, m := range markers {
		assert.NotZero(t, m.Latitude)
		assert.NotZero(t, m.Longitude)
		assert.Greater(t, m.TotalEntries, 0.0)
		assert.Greater(t, m.MetersFromCenter, 0.0)
		assert.NotEmpty(t, m.NameEntries)
	}
	assert.Equal(t, "10", markers[0].Bucket)
	assert.Equal(t, "Uffizi: 1", markers[0].NameEntries)
}

func TestGeoMapHourWindow(t *testing.T) {
	svc, db := newTestService(t)
	seedTypicalWeek(t, db)
	viz := NewVisualizationService(svc)

	markers, err := viz.GeoMap(july(1), 12, 23)
	require.NoError(t, err)

	// The 10:00 Uffizi entry falls outside the hour window.
	require.Len(t, markers, 1)
	assert.Equal(t, "14", markers[0].Bucket)
	assert.Equal(t, 2, markers[0].MuseumID)
}
