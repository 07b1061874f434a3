package models

// GeofenceDecision tells whether a point lies inside the allowed region.
// FormattedAddress is set only when IsValid, Reason only when it is not.
type GeofenceDecision struct {
	IsValid          bool   `json:"isValid"`
	FormattedAddress string `json:"formattedAddress,omitempty"`
	Reason           string `json:"reason,omitempty"`
}
