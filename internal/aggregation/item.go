package aggregation

import (
	"sync"

	"github.com/caoimherice/FoodMiles/internal/data"
)

// ItemAggregator resolves an item's legs, fetches every leg's route
// concurrently and folds the results into one ItemSummary.
type ItemAggregator struct {
	Resolver *LegResolver
	Fetcher  *RouteFetcher
}

func NewItemAggregator(items data.ItemDataService, catalog data.RouteDataService) *ItemAggregator {
	return &ItemAggregator{
		Resolver: NewLegResolver(items),
		Fetcher:  NewRouteFetcher(catalog),
	}
}

// fanOutRoutes issues one fetch per leg on its own goroutine. Each branch
// writes only its own slot, so a late sibling can never clobber another
// branch's result or the decided error. All branches run to completion;
// the lowest-index error wins, which keeps failures deterministic even
// though completion order is not.
func (ia *ItemAggregator) fanOutRoutes(legs []data.LegDTO) ([]data.RouteDTO, error) {
	routes := make([]data.RouteDTO, len(legs))
	errs := make([]error, len(legs))
	var wg sync.WaitGroup
	for i, leg := range legs {
		wg.Add(1)
		go func(i int, leg data.LegDTO) {
			defer wg.Done()
			routes[i], errs[i] = ia.Fetcher.Fetch(leg)
		}(i, leg)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return routes, nil
}

// Aggregate computes the item's totals. Fail-fast: a single missing route
// aborts the whole call and no partial summary is returned.
func (ia *ItemAggregator) Aggregate(ref data.ItemRef) (ItemSummary, error) {
	legs, err := ia.Resolver.Resolve(ref)
	if err != nil {
		return ItemSummary{}, err
	}
	routes, err := ia.fanOutRoutes(legs)
	if err != nil {
		return ItemSummary{}, err
	}
	summary := ItemSummary{
		Name:   ref.Name,
		Origin: ref.Origin,
	}
	for _, route := range routes {
		summary.Distance += route.Distance
		summary.Emissions += route.Emissions
		summary.LeadTime += route.LeadTime
	}
	return summary, nil
}

// AggregateWithPath additionally traces the journey's polyline in leg
// order, deduplicating the shared endpoint where one leg hands over to
// the next.
func (ia *ItemAggregator) AggregateWithPath(ref data.ItemRef) (ItemSummary, error) {
	legs, err := ia.Resolver.Resolve(ref)
	if err != nil {
		return ItemSummary{}, err
	}
	routes, err := ia.fanOutRoutes(legs)
	if err != nil {
		return ItemSummary{}, err
	}
	summary := ItemSummary{
		Name:   ref.Name,
		Origin: ref.Origin,
	}
	var path []Coordinate
	for _, route := range routes {
		summary.Distance += route.Distance
		summary.Emissions += route.Emissions
		summary.LeadTime += route.LeadTime
		for _, pair := range route.Coordinates {
			point := Coordinate{Longitude: pair[0], Latitude: pair[1]}
			if len(path) > 0 && path[len(path)-1] == point {
				continue
			}
			path = append(path, point)
		}
	}
	summary.Path = path
	return summary, nil
}
