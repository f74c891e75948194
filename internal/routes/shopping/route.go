package shopping

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"github.com/caoimherice/FoodMiles/internal/aggregation"
	"github.com/caoimherice/FoodMiles/internal/data"
	"github.com/caoimherice/FoodMiles/internal/exceptions"
	"github.com/caoimherice/FoodMiles/internal/routes"
	"github.com/caoimherice/FoodMiles/internal/routes/util"
)

type ShoppingListService struct {
	data       data.ShoppingListDataService
	aggregator *aggregation.CollectionAggregator
}

func NewRoute(data data.ShoppingListDataService, aggregator *aggregation.CollectionAggregator) routes.Service {
	return &ShoppingListService{
		data:       data,
		aggregator: aggregator,
	}
}

func (sl *ShoppingListService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/lists":                        util.AuthorizedRoute(sl.ListEntries),
		"GET:/lists/details":                util.AuthorizedRoute(sl.GetListDetails),
		"POST:/lists/items":                 util.AuthorizedRoute(sl.AddEntry),
		"DELETE:/lists/items/:name/:origin": util.AuthorizedRoute(sl.RemoveEntry),
	}
}

func (sl *ShoppingListService) ListEntries(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	results, err := sl.data.QueryEntries(util.Username(ctx), util.RequestQuery(event))
	return util.SerializeResponseOK(util.ConvertQueryResultsPartial(NewEntry), results, err)
}

// GetListDetails aggregates the caller's live list into one
// CollectionSummary, resolving every member item against the catalog.
func (sl *ShoppingListService) GetListDetails(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	summary, err := sl.aggregator.AggregateList(util.Username(ctx))
	return util.SerializeResponseOK(util.Identity[aggregation.CollectionSummary], summary, err)
}

func (sl *ShoppingListService) AddEntry(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input := EntryInput{}
	if err := json.Unmarshal([]byte(event.Body), &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput(err.Error())
	}
	if input.Name == nil || input.Origin == nil {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput("Please provide both \"name\" and \"origin\"")
	}
	ref, err := data.NewItemRef(*input.Name, *input.Origin)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	created, err := sl.data.PutEntry(util.Username(ctx), ref)
	return util.SerializeResponseOK(NewEntry, created, err)
}

func (sl *ShoppingListService) RemoveEntry(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	ref, err := data.NewItemRef(util.RequestParam(ctx, "name"), util.RequestParam(ctx, "origin"))
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	err = sl.data.DeleteEntry(util.Username(ctx), ref.ItemId())
	return util.SerializeResponseNoContent(err)
}
