package models

import "time"

// VisitRecord represents one FirenzeCard swipe logged at a museum entrance.
// UserID is nil for anonymous swipes (credential not tied to a card).
type VisitRecord struct {
	ID          int64     `json:"id" db:"id"`
	UserID      *string   `json:"userId" db:"user_id"`
	MuseumID    int       `json:"museumId" db:"museum_id"`
	MuseumName  string    `json:"museumName" db:"museum_name"`
	EntryTime   time.Time `json:"entryTime" db:"entry_time"`
	TotalAdults int       `json:"totalAdults" db:"total_adults"`
	Minors      int       `json:"minors" db:"minors"`
}

// VisitFilter restricts which swipe logs are fetched.
type VisitFilter struct {
	Window   DateWindow
	MuseumID int
}
