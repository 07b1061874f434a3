package models

// PricingParameters are the per-car prices supplied by the car catalog.
type PricingParameters struct {
	Base100KmFare float64 `json:"base_100km_fare"` // Flat fare covering the first 100 km.
	ExtraPerKm    float64 `json:"extra_per_km"`    // Rate for every km beyond the first 100.
}

// FareBreakdown is a priced trip.
// TotalFare == BaseFare + ExtraFare and ExtraFare == ExtraDistanceKm * ExtraRatePerKm.
type FareBreakdown struct {
	BaseFare        float64 `json:"base_100km_fare"`
	ExtraDistanceKm int     `json:"extra_km"`
	ExtraRatePerKm  float64 `json:"extra_per_km"`
	ExtraFare       float64 `json:"extra_fare"`
	TotalFare       float64 `json:"total_fare"`
}
