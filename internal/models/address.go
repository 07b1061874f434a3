package models

// Address component keys as returned by Nominatim in the "address" object.
const (
	ComponentCounty        = "county"
	ComponentStateDistrict = "state_district"
	ComponentState         = "state"
	ComponentCity          = "city"
	ComponentPostcode      = "postcode"
	ComponentCountry       = "country"
)

// AddressComponents is the structured breakdown of an address. The provider
// schema varies by locale, so it is kept as a loose string mapping.
type AddressComponents map[string]string

// County returns the "county" component or an empty string.
func (a AddressComponents) County() string { return a[ComponentCounty] }

// StateDistrict returns the "state_district" component or an empty string.
func (a AddressComponents) StateDistrict() string { return a[ComponentStateDistrict] }

// State returns the "state" component or an empty string.
func (a AddressComponents) State() string { return a[ComponentState] }

// District returns the district-level name: county when present and non-empty,
// otherwise state_district.
func (a AddressComponents) District() string {
	if county := a.County(); county != "" {
		return county
	}

	return a.StateDistrict()
}

// LookupResult is either a successful lookup (OK with DisplayAddress and
// Components) or a failure carrying a human readable Reason.
type LookupResult struct {
	OK             bool
	DisplayAddress string
	Components     AddressComponents
	Reason         string
}

// LookupSuccess builds a successful LookupResult.
func LookupSuccess(displayAddress string, components AddressComponents) LookupResult {
	if components == nil {
		components = AddressComponents{}
	}

	return LookupResult{OK: true, DisplayAddress: displayAddress, Components: components}
}

// LookupFailure builds a failed LookupResult with the given reason.
func LookupFailure(reason string) LookupResult {
	return LookupResult{Reason: reason}
}
