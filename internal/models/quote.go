package models

// QuoteRequest asks for the price of a trip. Each endpoint is given either as
// coordinates or as a free-text address to be geocoded.
type QuoteRequest struct {
	ID                 string            `json:"id,omitempty"`
	Pickup             *Coordinate       `json:"pickup,omitempty"`
	PickupAddress      string            `json:"pickup_address,omitempty"`
	Destination        *Coordinate       `json:"destination,omitempty"`
	DestinationAddress string            `json:"destination_address,omitempty"`
	Pricing            PricingParameters `json:"pricing"`
}

// QuoteResult is the answer to a QuoteRequest. When Valid is false, Reason
// holds a user facing explanation, or Error describes a malformed request.
type QuoteResult struct {
	ID                 string         `json:"id"`
	Valid              bool           `json:"valid"`
	Reason             string         `json:"reason,omitempty"`
	Error              string         `json:"error,omitempty"`
	PickupAddress      string         `json:"pickup_address,omitempty"`
	DestinationAddress string         `json:"destination_address,omitempty"`
	DistanceKm         int            `json:"distance_km,omitempty"`
	Fare               *FareBreakdown `json:"fare,omitempty"`
}
