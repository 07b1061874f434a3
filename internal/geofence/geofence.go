// Package geofence checks that a pickup point lies inside the single
// administrative region the service operates in.
package geofence

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/UnknownOlympus/cabfare/internal/geocoding"
	"github.com/UnknownOlympus/cabfare/internal/models"
)

// ReasonUnverified is reported when the point could not be looked up.
const ReasonUnverified = "Could not verify location"

// Region names the allowed district and the state it belongs to.
type Region struct {
	District string
	State    string
}

// Validator decides whether coordinates fall within a Region, using the
// address components returned by a reverse lookup.
type Validator struct {
	geocoder geocoding.Geocoder
	region   Region
	log      *slog.Logger
}

// NewValidator creates a Validator. The geocoder is expected to be rate limited.
func NewValidator(geocoder geocoding.Geocoder, region Region, log *slog.Logger) *Validator {
	return &Validator{geocoder: geocoder, region: region, log: log}
}

// Region returns the region used by Validate.
func (v *Validator) Region() Region {
	return v.region
}

// Validate checks coord against the validator's configured region.
func (v *Validator) Validate(ctx context.Context, coord models.Coordinate) models.GeofenceDecision {
	return v.ValidateRegion(ctx, coord, v.region.District, v.region.State)
}

// ValidateRegion checks that coord lies in requiredDistrict of requiredState.
// Both names are matched as case-insensitive substrings of the looked-up
// district (county, else state_district) and state.
func (v *Validator) ValidateRegion(
	ctx context.Context,
	coord models.Coordinate,
	requiredDistrict, requiredState string,
) models.GeofenceDecision {
	lookup := v.geocoder.Reverse(ctx, coord)
	if !lookup.OK {
		v.log.WarnContext(ctx, "Pickup location could not be verified",
			"lat", coord.Latitude, "lon", coord.Longitude, "reason", lookup.Reason)
		return models.GeofenceDecision{Reason: ReasonUnverified}
	}

	district := lookup.Components.District()
	state := lookup.Components.State()

	if containsFold(district, requiredDistrict) && containsFold(state, requiredState) {
		v.log.DebugContext(ctx, "Pickup location accepted", "district", district, "state", state)
		return models.GeofenceDecision{IsValid: true, FormattedAddress: lookup.DisplayAddress}
	}

	v.log.InfoContext(ctx, "Pickup location outside region",
		"district", district, "state", state, "required_district", requiredDistrict, "required_state", requiredState)

	return models.GeofenceDecision{
		Reason: fmt.Sprintf("Pickup must be in %s, %s. Currently we only operate pickups from %s.",
			requiredDistrict, requiredState, requiredDistrict),
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
