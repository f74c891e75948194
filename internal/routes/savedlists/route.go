package savedlists

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"github.com/caoimherice/FoodMiles/internal/aggregation"
	"github.com/caoimherice/FoodMiles/internal/data"
	"github.com/caoimherice/FoodMiles/internal/exceptions"
	"github.com/caoimherice/FoodMiles/internal/routes"
	"github.com/caoimherice/FoodMiles/internal/routes/util"
	"github.com/caoimherice/FoodMiles/internal/snapshot"
)

type SavedListService struct {
	data       data.SavedListDataService
	writer     *snapshot.Writer
	aggregator *aggregation.CollectionAggregator
}

func NewRoute(data data.SavedListDataService, writer *snapshot.Writer, aggregator *aggregation.CollectionAggregator) routes.Service {
	return &SavedListService{
		data:       data,
		writer:     writer,
		aggregator: aggregator,
	}
}

func (ss *SavedListService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"POST:/lists/save":                 util.AuthorizedRoute(ss.SaveList),
		"GET:/lists/saved":                 util.AuthorizedRoute(ss.ListSavedLists),
		"GET:/lists/saved/:listId/details": util.AuthorizedRoute(ss.GetSavedListDetails),
	}
}

func (ss *SavedListService) SaveList(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input := SaveInput{}
	if err := json.Unmarshal([]byte(event.Body), &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput(err.Error())
	}
	var refs []data.ItemRef
	if input.Items != nil {
		refs = *input.Items
	}
	saved, err := ss.writer.Save(util.Username(ctx), refs)
	return util.SerializeResponseOK(NewSavedList, saved, err)
}

func (ss *SavedListService) ListSavedLists(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	results, err := ss.data.QuerySavedLists(util.Username(ctx), util.RequestQuery(event))
	return util.SerializeResponseOK(util.ConvertQueryResultsPartial(NewSavedList), results, err)
}

// GetSavedListDetails re-aggregates a frozen selection against the
// current catalog; totals are never cached on the saved record.
func (ss *SavedListService) GetSavedListDetails(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	summary, err := ss.aggregator.AggregateSaved(util.Username(ctx), util.RequestParam(ctx, "listId"))
	return util.SerializeResponseOK(util.Identity[aggregation.CollectionSummary], summary, err)
}
