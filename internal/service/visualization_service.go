package service

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/optourism/firenzecard-backend-go/internal/models"
	"github.com/optourism/firenzecard-backend-go/internal/spatial"
)

var dayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// VisualizationService builds chart-ready payloads on top of the extracted
// feature rows.
type VisualizationService struct {
	analysis *AnalysisService
}

// NewVisualizationService creates a new visualization service.
func NewVisualizationService(analysis *AnalysisService) *VisualizationService {
	return &VisualizationService{analysis: analysis}
}

// MuseumTotals sums the people admitted per museum over the whole log,
// ordered from least to most visited.
func (s *VisualizationService) MuseumTotals() ([]models.MuseumTotal, error) {
	extracted, err := s.analysis.ExtractFeatures(false)
	if err != nil {
		return nil, err
	}

	sums := make(map[string]int)
	for i := range extracted.Rows {
		r := &extracted.Rows[i]
		sums[r.ShortName] += r.TotalPeople
	}

	totals := make([]models.MuseumTotal, 0, len(sums))
	for name, total := range sums {
		totals = append(totals, models.MuseumTotal{ShortName: name, TotalPeople: total})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].TotalPeople != totals[j].TotalPeople {
			return totals[i].TotalPeople < totals[j].TotalPeople
		}
		return totals[i].ShortName < totals[j].ShortName
	})
	return totals, nil
}

// MuseumsPerCard histograms the number of distinct museums each card
// visited. Anonymous rows carry no card and are left out.
func (s *VisualizationService) MuseumsPerCard() ([]models.CardMuseumCount, error) {
	extracted, err := s.analysis.ExtractFeatures(false)
	if err != nil {
		return nil, err
	}

	perCard := make(map[string]map[int]bool)
	for i := range extracted.Rows {
		r := &extracted.Rows[i]
		if !r.HasCard() {
			continue
		}
		card := *r.UserID
		if perCard[card] == nil {
			perCard[card] = make(map[int]bool)
		}
		perCard[card][r.MuseumID] = true
	}

	bins := make(map[int]int)
	for _, museums := range perCard {
		bins[len(museums)]++
	}

	histogram := make([]models.CardMuseumCount, 0, len(bins))
	for museums, cards := range bins {
		histogram = append(histogram, models.CardMuseumCount{Museums: museums, Cards: cards})
	}
	sort.Slice(histogram, func(i, j int) bool { return histogram[i].Museums < histogram[j].Museums })
	return histogram, nil
}

// ActivationDays counts the cards whose first swipe fell on each weekday,
// Monday through Sunday.
func (s *VisualizationService) ActivationDays() ([]models.ActivationDayCount, error) {
	extracted, err := s.analysis.ExtractFeatures(false)
	if err != nil {
		return nil, err
	}

	// Rows come back ordered by entry time, so the first occurrence of a
	// card is its activation.
	firstSeen := make(map[string]int)
	for i := range extracted.Rows {
		r := &extracted.Rows[i]
		if !r.HasCard() {
			continue
		}
		if _, seen := firstSeen[*r.UserID]; !seen {
			firstSeen[*r.UserID] = r.DayOfWeek
		}
	}

	counts := make([]int, len(dayNames))
	for _, dow := range firstSeen {
		if dow >= 0 && dow < len(counts) {
			counts[dow]++
		}
	}

	out := make([]models.ActivationDayCount, len(dayNames))
	for i, name := range dayNames {
		out[i] = models.ActivationDayCount{DayOfWeek: i, DayName: name, Cards: counts[i]}
	}
	return out, nil
}

// GeoMap builds the map overlay for one calendar day: a marker per museum
// per hour in [hourMin, hourMax], skipping hours with no entries.
func (s *VisualizationService) GeoMap(date time.Time, hourMin, hourMax int) ([]models.GeoMarker, error) {
	extracted, err := s.analysis.ExtractFeatures(false)
	if err != nil {
		return nil, err
	}
	locations, err := s.analysis.Locations()
	if err != nil {
		return nil, err
	}
	byID := make(map[int]models.MuseumLocation, len(locations))
	for _, l := range locations {
		byID[l.MuseumID] = l
	}

	day := models.DateWindow{Start: date, End: date}
	hourly, err := s.analysis.entrancesSeries(extracted.Rows, AllMuseums, models.GranularityHour, day)
	if err != nil {
		return nil, err
	}

	var markers []models.GeoMarker
	for _, p := range hourly {
		h := parseHour(p.Bucket)
		if h < hourMin || h > hourMax {
			continue
		}
		if p.TotalEntries == 0 {
			continue
		}
		loc, ok := byID[p.MuseumID]
		if !ok {
			continue
		}
		markers = append(markers, models.GeoMarker{
			Bucket:           p.Bucket,
			MuseumID:         p.MuseumID,
			ShortName:        p.ShortName,
			Latitude:         loc.Latitude,
			Longitude:        loc.Longitude,
			TotalEntries:     p.TotalEntries,
			NameEntries:      fmt.Sprintf("%s: %.0f", p.ShortName, p.TotalEntries),
			MetersFromCenter: spatial.DistanceFromCenter(loc.Latitude, loc.Longitude),
		})
	}
	return markers, nil
}

func parseHour(bucket string) int {
	h, err := strconv.Atoi(bucket)
	if err != nil {
		return -1
	}
	return h
}
