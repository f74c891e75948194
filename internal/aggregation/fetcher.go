package aggregation

import "github.com/caoimherice/FoodMiles/internal/data"

// RouteFetcher resolves one leg against the routes catalog. It is the
// unit of concurrent fan-out: idempotent, side-effect free, safe to call
// from as many goroutines as an item has legs.
type RouteFetcher struct {
	Catalog data.RouteDataService
}

func NewRouteFetcher(catalog data.RouteDataService) *RouteFetcher {
	return &RouteFetcher{
		Catalog: catalog,
	}
}

// Fetch fails with a not-found error naming the exact (origin,
// destination) pair, so callers can report which leg broke resolution.
// No default route is ever substituted.
func (rf *RouteFetcher) Fetch(leg data.LegDTO) (data.RouteDTO, error) {
	return rf.Catalog.GetRoute(leg.Origin, leg.Destination)
}
