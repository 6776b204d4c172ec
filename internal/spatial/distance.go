// Package spatial provides the great-circle helpers used by the map overlay
// and the correlated-pair annotations.
package spatial

import (
	"github.com/golang/geo/s2"
)

// EarthRadiusMeters is the mean Earth radius.
const EarthRadiusMeters = 6371000.0

// Historic center of Florence, the default map focus.
const (
	FlorenceCenterLat = 43.768
	FlorenceCenterLon = 11.262
)

// HaversineDistance calculates the great-circle distance between two points
// in meters.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// DistanceFromCenter returns the distance from the Florence city center in
// meters.
func DistanceFromCenter(lat, lon float64) float64 {
	return HaversineDistance(FlorenceCenterLat, FlorenceCenterLon, lat, lon)
}
