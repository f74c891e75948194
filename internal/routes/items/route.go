package items

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"github.com/caoimherice/FoodMiles/internal/aggregation"
	"github.com/caoimherice/FoodMiles/internal/data"
	"github.com/caoimherice/FoodMiles/internal/exceptions"
	"github.com/caoimherice/FoodMiles/internal/routes"
	"github.com/caoimherice/FoodMiles/internal/routes/util"
	"github.com/caoimherice/FoodMiles/internal/suggestions"
)

type ItemService struct {
	data       data.ItemDataService
	aggregator *aggregation.ItemAggregator
	finder     *suggestions.Finder
}

func NewRoute(data data.ItemDataService, aggregator *aggregation.ItemAggregator, finder *suggestions.Finder) routes.Service {
	return &ItemService{
		data:       data,
		aggregator: aggregator,
		finder:     finder,
	}
}

func (is *ItemService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"POST:/food/items":              util.AuthorizedRoute(is.CreateItem),
		"GET:/food/items/:name/:origin": util.AuthorizedRoute(is.GetItemDetail),
	}
}

func (is *ItemService) CreateItem(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input := ItemInput{}
	if err := json.Unmarshal([]byte(event.Body), &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput(err.Error())
	}
	created, err := is.data.PutItem(input.ToData())
	return util.SerializeResponseOK(NewItem, created, err)
}

// GetItemDetail returns the item's aggregated journey. A miss on the item
// itself degrades into a 404 carrying catalog suggestions; a miss on one
// of its routes stays a hard aggregation failure.
func (is *ItemService) GetItemDetail(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	ref, err := data.NewItemRef(util.RequestParam(ctx, "name"), util.RequestParam(ctx, "origin"))
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	item, err := is.data.GetItem(ref)
	if err != nil {
		var nfe *exceptions.NotFoundError
		if errors.As(err, &nfe) {
			return is.respondNotFound(nfe, ref)
		}
		return events.APIGatewayV2HTTPResponse{}, err
	}
	summary, err := is.aggregator.AggregateWithPath(ref)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	detail := ItemDetail{
		Name:      item.Name,
		Origin:    item.Origin,
		Legs:      *util.MapOnList(&item.Legs, ConvertLegDataToTransfer),
		Distance:  summary.Distance,
		Emissions: summary.Emissions,
		LeadTime:  summary.LeadTime,
		Path:      summary.Path,
	}
	return util.SerializeResponseOK(util.Identity[ItemDetail], detail, nil)
}

func (is *ItemService) respondNotFound(nfe *exceptions.NotFoundError, ref data.ItemRef) (events.APIGatewayV2HTTPResponse, error) {
	found, err := is.finder.Find(ref.Name, ref.Origin)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	if found == nil {
		found = make([]data.ItemRef, 0)
	}
	body, err := json.Marshal(NotFoundBody{
		Message:     nfe.Error(),
		Suggestions: found,
	})
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: 404,
		Headers: map[string]string{
			"Content-Type":   "application/json",
			"Content-Length": strconv.Itoa(len(body)),
		},
		Body: string(body),
	}, nil
}
