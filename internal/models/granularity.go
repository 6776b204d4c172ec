package models

import "time"

// Granularity is the time-bucketing unit used for aggregation.
type Granularity string

const (
	GranularityDayOfWeek Granularity = "day_of_week"
	GranularityHour      Granularity = "hour"
	GranularityDate      Granularity = "date"
)

// Granularities returns the supported bucketing units.
func Granularities() []Granularity {
	return []Granularity{GranularityDayOfWeek, GranularityHour, GranularityDate}
}

// Valid reports whether g is a supported granularity.
func (g Granularity) Valid() bool {
	switch g {
	case GranularityDayOfWeek, GranularityHour, GranularityDate:
		return true
	}
	return false
}

// DateWindow is an inclusive calendar-day range.
type DateWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// IsZero reports whether the window is unset.
func (w DateWindow) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

// Days returns every calendar day in [Start, End], inclusive.
func (w DateWindow) Days() []time.Time {
	if w.End.Before(w.Start) {
		return nil
	}
	start := time.Date(w.Start.Year(), w.Start.Month(), w.Start.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(w.End.Year(), w.End.Month(), w.End.Day(), 0, 0, 0, 0, time.UTC)

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Contains reports whether day falls inside the window. A zero window
// contains everything.
func (w DateWindow) Contains(day time.Time) bool {
	if w.IsZero() {
		return true
	}
	d := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(w.Start) && !d.After(w.End)
}
