package models

import "time"

// VisitFeatures is one swipe log row joined with its museum location and
// augmented with the derived behavioral features.
//
// TimeSincePreviousMuseum and TotalDurationCardUse are nil where undefined:
// the first visit on a card has no previous visit, and anonymous swipes have
// no card session at all.
type VisitFeatures struct {
	UserID     *string   `json:"userId"`
	MuseumID   int       `json:"museumId"`
	MuseumName string    `json:"museumName"`
	ShortName  string    `json:"shortName"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	EntryTime  time.Time `json:"entryTime"`

	Date      string `json:"date"`      // 2006-01-02
	Time      string `json:"time"`      // 15:04:05
	Hour      int    `json:"hour"`      // 0..23
	DayOfWeek int    `json:"dayOfWeek"` // 0=Monday .. 6=Sunday

	TotalAdults int `json:"totalAdults"`
	Minors      int `json:"minors"`
	TotalPeople int `json:"totalPeople"`

	TimeSincePreviousMuseum *float64 `json:"timeSincePreviousMuseum"` // hours
	TotalDurationCardUse    *float64 `json:"totalDurationCardUse"`    // hours

	EntryIsAdult     int `json:"entryIsAdult"`
	IsCardWithMinors int `json:"isCardWithMinors"`

	EntrancesPerCardPerMuseum int `json:"entrancesPerCardPerMuseum"`

	// IsInMuseum maps indicator museum id -> 0/1. The indicator id set is
	// recorded once on the ExtractResult.
	IsInMuseum map[int]int `json:"isInMuseum"`
}

// HasCard reports whether the row belongs to a card session.
func (f *VisitFeatures) HasCard() bool {
	return f.UserID != nil && *f.UserID != ""
}
