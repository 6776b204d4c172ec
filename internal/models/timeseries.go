package models

// TimeSeriesPoint is one aggregated cell of a museum time series: the entry
// total for one museum in one time bucket.
//
// Bucket is the bucket value rendered as text: "0".."6" for day-of-week,
// "0".."23" for hour, "2006-01-02" for calendar dates.
type TimeSeriesPoint struct {
	MuseumID     int     `json:"museumId"`
	ShortName    string  `json:"shortName,omitempty"`
	Bucket       string  `json:"bucket"`
	TotalEntries float64 `json:"totalEntries"`
}

// EntriesResult is the outcome of the entries-per-granularity operation: one
// interpolated, re-aggregated series per requested museum name (plus the
// implicit "All Museums"), and the requested names that were not recognized.
type EntriesResult struct {
	Granularity  Granularity                  `json:"granularity"`
	Museums      map[string][]TimeSeriesPoint `json:"museums"`
	InvalidNames []string                     `json:"invalidNames,omitempty"`
}

// UsageTimelines carries the average entry counts per bucket across all
// museums, one series per granularity.
type UsageTimelines struct {
	PerHour      []TimeSeriesPoint `json:"perHour"`
	PerDayOfWeek []TimeSeriesPoint `json:"perDayOfWeek"`
	PerDate      []TimeSeriesPoint `json:"perDate"`
}

// MonthlyComparison lines up FirenzeCard entry totals against state museum
// visitor totals for one month.
type MonthlyComparison struct {
	Month              string  `json:"month"`
	FirenzeCardEntries float64 `json:"firenzecardEntries"`
	StateEntries       int     `json:"stateEntries"`
}
