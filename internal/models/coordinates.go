package models

// Coordinate represents a geographical point defined by its latitude and longitude.
type Coordinate struct {
	Latitude  float64 `json:"lat"` // Latitude of the point, in degrees.
	Longitude float64 `json:"lng"` // Longitude of the point, in degrees.
}

// ForwardResult is the outcome of resolving a free-text address to a point.
// Coordinate is only meaningful when Lookup.OK is true.
type ForwardResult struct {
	Coordinate Coordinate
	Lookup     LookupResult
}
