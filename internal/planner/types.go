package planner

// RoutePlan is what curators prefill a catalog route from: an integer
// mileage, a lead time estimate in days and the polyline of the journey
// as (longitude, latitude) pairs.
type RoutePlan struct {
	Distance    int
	LeadTime    int
	Coordinates [][2]float64
}

type RoutePlanner interface {
	Plan(originLatLng string, destinationLatLng string) (RoutePlan, error)
}
