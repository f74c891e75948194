package catalog

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"github.com/caoimherice/FoodMiles/internal/data"
	"github.com/caoimherice/FoodMiles/internal/exceptions"
	"github.com/caoimherice/FoodMiles/internal/planner"
	"github.com/caoimherice/FoodMiles/internal/routes"
	"github.com/caoimherice/FoodMiles/internal/routes/util"
)

type CatalogService struct {
	data    data.RouteDataService
	planner planner.RoutePlanner
}

// NewRoute wires the route catalog endpoints. The planner is optional;
// when configured, create requests that carry endpoint coordinates but no
// measured distance get prefilled from the directions service.
func NewRoute(data data.RouteDataService, routePlanner planner.RoutePlanner) routes.Service {
	return &CatalogService{
		data:    data,
		planner: routePlanner,
	}
}

func (cs *CatalogService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"POST:/food/routes":                     util.AuthorizedRoute(cs.CreateRoute),
		"GET:/food/routes/:origin/:destination": util.AuthorizedRoute(cs.GetRoute),
	}
}

func (cs *CatalogService) GetRoute(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	route, err := cs.data.GetRoute(util.RequestParam(ctx, "origin"), util.RequestParam(ctx, "destination"))
	return util.SerializeResponseOK(NewCatalogRoute, route, err)
}

func (cs *CatalogService) CreateRoute(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input := RouteInput{}
	if err := json.Unmarshal([]byte(event.Body), &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput(err.Error())
	}
	if cs.planner != nil && input.Distance == nil && input.OriginLatLng != nil && input.DestinationLatLng != nil {
		plan, err := cs.planner.Plan(*input.OriginLatLng, *input.DestinationLatLng)
		if err != nil {
			return events.APIGatewayV2HTTPResponse{}, err
		}
		input.Distance = &plan.Distance
		if input.LeadTime == nil {
			input.LeadTime = &plan.LeadTime
		}
		if input.Coordinates == nil {
			input.Coordinates = &plan.Coordinates
		}
	}
	created, err := cs.data.PutRoute(input.ToData())
	return util.SerializeResponseOK(NewCatalogRoute, created, err)
}
