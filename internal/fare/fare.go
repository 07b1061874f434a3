// Package fare prices a trip from its road distance and the car's rates.
package fare

import "github.com/UnknownOlympus/cabfare/internal/models"

// BaseTierKm is the distance covered by the flat base fare.
const BaseTierKm = 100

// Compute returns the fare breakdown for a trip of distanceKm kilometres.
// Trips up to and including BaseTierKm cost the base fare; every kilometre
// beyond it is charged at pricing.ExtraPerKm. Inputs are expected to be
// non-negative and are not re-validated here.
func Compute(distanceKm int, pricing models.PricingParameters) models.FareBreakdown {
	breakdown := models.FareBreakdown{
		BaseFare:       pricing.Base100KmFare,
		ExtraRatePerKm: pricing.ExtraPerKm,
		TotalFare:      pricing.Base100KmFare,
	}
	if distanceKm <= BaseTierKm {
		return breakdown
	}

	breakdown.ExtraDistanceKm = distanceKm - BaseTierKm
	breakdown.ExtraFare = float64(breakdown.ExtraDistanceKm) * pricing.ExtraPerKm
	breakdown.TotalFare = pricing.Base100KmFare + breakdown.ExtraFare

	return breakdown
}
