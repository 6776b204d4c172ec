package models

// MuseumTotal is the aggregate number of people a museum admitted over the
// whole analysis window. Chart-ready: the caller renders these as a bar chart.
type MuseumTotal struct {
	ShortName   string `json:"shortName"`
	TotalPeople int    `json:"totalPeople"`
}

// CardMuseumCount is one histogram bin: how many cards visited exactly
// Museums distinct museums.
type CardMuseumCount struct {
	Museums int `json:"museums"`
	Cards   int `json:"cards"`
}

// ActivationDayCount counts the cards whose first recorded swipe fell on a
// given weekday.
type ActivationDayCount struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0=Monday .. 6=Sunday
	DayName   string `json:"dayName"`
	Cards     int    `json:"cards"`
}

// GeoMarker is one museum marker on the map overlay for one time bucket.
type GeoMarker struct {
	Bucket           string  `json:"bucket"`
	MuseumID         int     `json:"museumId"`
	ShortName        string  `json:"shortName"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	TotalEntries     float64 `json:"totalEntries"`
	NameEntries      string  `json:"nameEntries"`
	MetersFromCenter float64 `json:"metersFromCenter"`
}
