// Package distance estimates road distances between two points.
package distance

import (
	"math"

	"github.com/UnknownOlympus/cabfare/internal/models"
)

const (
	// EarthRadiusKm is the mean Earth radius used by the haversine formula.
	EarthRadiusKm = 6371.0
	// RoadFactor approximates the extra length of real roads over the straight line.
	RoadFactor = 1.3
)

// Haversine returns the great-circle distance in kilometres between two points.
func Haversine(from, to models.Coordinate) float64 {
	lat1 := degreesToRadians(from.Latitude)
	lat2 := degreesToRadians(to.Latitude)
	deltaLat := degreesToRadians(to.Latitude - from.Latitude)
	deltaLng := degreesToRadians(to.Longitude - from.Longitude)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// EstimateRoadDistanceKm returns the estimated road distance between two points,
// rounded up to the next whole kilometre so a fare is never undercharged.
func EstimateRoadDistanceKm(from, to models.Coordinate) int {
	return int(math.Ceil(Haversine(from, to) * RoadFactor))
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
