// Package aggregation folds a food item's transport legs, and whole
// collections of items, into distance, emissions and lead time totals.
// Independent catalog lookups fan out concurrently; folds walk source
// order, never completion order.
package aggregation

import "github.com/caoimherice/FoodMiles/internal/data"

// Coordinate is one (longitude, latitude) point on a traced journey.
type Coordinate struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// ItemSummary is derived on every read and never stored. All three
// metrics are exact integer sums over the item's legs.
type ItemSummary struct {
	Name      string       `json:"name"`
	Origin    string       `json:"origin"`
	Distance  int          `json:"distance"`
	Emissions int          `json:"emissions"`
	LeadTime  int          `json:"leadTime"`
	Path      []Coordinate `json:"path,omitempty"`
}

func (s ItemSummary) Ref() data.ItemRef {
	return data.ItemRef{Name: s.Name, Origin: s.Origin}
}

type CollectionSummary struct {
	Items          []ItemSummary `json:"items"`
	TotalDistance  int           `json:"totalDistance"`
	TotalEmissions int           `json:"totalEmissions"`
	TotalLeadTime  int           `json:"totalLeadTime"`
}
