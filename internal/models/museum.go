package models

// MuseumLocation holds the location metadata for one museum. MuseumID is the
// join key back to the swipe logs.
type MuseumLocation struct {
	MuseumID   int     `json:"museumId" db:"museum_id"`
	MuseumName string  `json:"museumName" db:"museum_name"`
	ShortName  string  `json:"shortName" db:"short_name"`
	Latitude   float64 `json:"latitude" db:"latitude"`
	Longitude  float64 `json:"longitude" db:"longitude"`
}

// NationalMuseumVisit is one row of the state/national museum comparison
// table: aggregate visitor counts per museum per month.
type NationalMuseumVisit struct {
	MuseumID      int    `json:"museumId" db:"museum_id"`
	VisitMonth    string `json:"visitMonth" db:"visit_month"`
	TotalVisitors int    `json:"totalVisitors" db:"total_visitors"`
}
