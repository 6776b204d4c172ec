// Package features derives the per-visit and per-card behavioral features
// from raw FirenzeCard swipe logs joined with museum location metadata.
package features

import (
	"sort"
	"time"

	"github.com/optourism/firenzecard-backend-go/internal/models"
)

// ExtractResult is the feature-extracted frame: one row per surviving visit,
// plus the museum ids that carry one-hot indicator columns.
type ExtractResult struct {
	Rows []models.VisitFeatures
	// IndicatorIDs lists the museum ids with a one-hot column, ids
	// 1..(distinct museum count - 1). The highest id never gets a column
	// of its own; downstream consumers expect exactly this column set.
	IndicatorIDs []int
}

// Extract joins visits with locations and derives the behavioral features.
//
// The join is inner on (museum_id, museum_name): visits referencing unknown
// museums are silently dropped. Empty input yields an empty result, not an
// error.
func Extract(visits []models.VisitRecord, locations []models.MuseumLocation) (*ExtractResult, error) {
	type joinKey struct {
		id   int
		name string
	}
	locIndex := make(map[joinKey]models.MuseumLocation, len(locations))
	for _, l := range locations {
		locIndex[joinKey{l.MuseumID, l.MuseumName}] = l
	}

	rows := make([]models.VisitFeatures, 0, len(visits))
	for _, v := range visits {
		loc, ok := locIndex[joinKey{v.MuseumID, v.MuseumName}]
		if !ok {
			continue
		}

		f := models.VisitFeatures{
			UserID:      v.UserID,
			MuseumID:    v.MuseumID,
			MuseumName:  v.MuseumName,
			ShortName:   loc.ShortName,
			Latitude:    loc.Latitude,
			Longitude:   loc.Longitude,
			EntryTime:   v.EntryTime,
			Date:        v.EntryTime.Format("2006-01-02"),
			Time:        v.EntryTime.Format("15:04:05"),
			Hour:        v.EntryTime.Hour(),
			DayOfWeek:   mondayIndexed(v.EntryTime.Weekday()),
			TotalAdults: v.TotalAdults,
			Minors:      v.Minors,
			TotalPeople: v.TotalAdults + v.Minors,
		}
		if v.TotalAdults == 1 {
			f.EntryIsAdult = 1
		}
		// Matches cards carrying exactly one minor; cards with several
		// minors are not flagged. TODO: confirm with stakeholders whether
		// minors > 1 should count before changing this.
		if v.Minors == 1 {
			f.IsCardWithMinors = 1
		}

		rows = append(rows, f)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].EntryTime.Before(rows[j].EntryTime)
	})

	deriveCardFeatures(rows)
	indicatorIDs := deriveIndicators(rows)

	return &ExtractResult{Rows: rows, IndicatorIDs: indicatorIDs}, nil
}

// deriveCardFeatures fills the per-card features on rows already sorted by
// entry time: inter-visit gaps, total card-use duration and per-card
// per-museum entrance counts. Anonymous rows have no card session: their gap
// and duration stay nil and their entrance count stays zero.
func deriveCardFeatures(rows []models.VisitFeatures) {
	type span struct {
		first time.Time
		last  time.Time
	}
	type cardMuseum struct {
		user     string
		museumID int
	}

	lastSeen := make(map[string]time.Time)
	spans := make(map[string]*span)
	entrances := make(map[cardMuseum]int)

	for i := range rows {
		r := &rows[i]
		if !r.HasCard() {
			continue
		}
		user := *r.UserID

		if prev, ok := lastSeen[user]; ok {
			gap := r.EntryTime.Sub(prev).Hours()
			r.TimeSincePreviousMuseum = &gap
		}
		lastSeen[user] = r.EntryTime

		if s, ok := spans[user]; ok {
			s.last = r.EntryTime
		} else {
			spans[user] = &span{first: r.EntryTime, last: r.EntryTime}
		}

		entrances[cardMuseum{user, r.MuseumID}]++
	}

	for i := range rows {
		r := &rows[i]
		if !r.HasCard() {
			continue
		}
		user := *r.UserID

		d := spans[user].last.Sub(spans[user].first).Hours()
		r.TotalDurationCardUse = &d
		r.EntrancesPerCardPerMuseum = entrances[cardMuseum{user, r.MuseumID}]
	}
}

// deriveIndicators adds the one-hot museum columns for ids 1..(distinct-1)
// and returns the indicator id set.
func deriveIndicators(rows []models.VisitFeatures) []int {
	distinct := make(map[int]struct{})
	for i := range rows {
		distinct[rows[i].MuseumID] = struct{}{}
	}
	if len(distinct) == 0 {
		return nil
	}

	ids := make([]int, 0, len(distinct)-1)
	for n := 1; n < len(distinct); n++ {
		ids = append(ids, n)
	}

	for i := range rows {
		indicators := make(map[int]int, len(ids))
		for _, id := range ids {
			if rows[i].MuseumID == id {
				indicators[id] = 1
			} else {
				indicators[id] = 0
			}
		}
		rows[i].IsInMuseum = indicators
	}
	return ids
}

// mondayIndexed converts Go's Sunday-first weekday to 0=Monday..6=Sunday.
func mondayIndexed(d time.Weekday) int {
	return (int(d) + 6) % 7
}
