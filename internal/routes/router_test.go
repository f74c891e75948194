package routes_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/caoimherice/FoodMiles/internal/aggregation"
	"github.com/caoimherice/FoodMiles/internal/data"
	catalogData "github.com/caoimherice/FoodMiles/internal/dynamodb/catalog"
	itemData "github.com/caoimherice/FoodMiles/internal/dynamodb/items"
	savedData "github.com/caoimherice/FoodMiles/internal/dynamodb/savedlists"
	shoppingData "github.com/caoimherice/FoodMiles/internal/dynamodb/shopping"
	userData "github.com/caoimherice/FoodMiles/internal/dynamodb/users"
	"github.com/caoimherice/FoodMiles/internal/dynamodb/token"
	"github.com/caoimherice/FoodMiles/internal/notifications"
	"github.com/caoimherice/FoodMiles/internal/routes"
	"github.com/caoimherice/FoodMiles/internal/routes/catalog"
	"github.com/caoimherice/FoodMiles/internal/routes/items"
	"github.com/caoimherice/FoodMiles/internal/routes/savedlists"
	"github.com/caoimherice/FoodMiles/internal/routes/shopping"
	"github.com/caoimherice/FoodMiles/internal/routes/users"
	"github.com/caoimherice/FoodMiles/internal/snapshot"
	"github.com/caoimherice/FoodMiles/internal/suggestions"
	"github.com/caoimherice/FoodMiles/internal/test"
	"golang.org/x/exp/maps"
)

type LocalNotifications struct {
	Messages []notifications.SavedListMessage
}

func (ln *LocalNotifications) PublishSavedList(message notifications.SavedListMessage) (*notifications.PublishOutput, error) {
	ln.Messages = append(ln.Messages, message)
	return &notifications.PublishOutput{
		MessageId: fmt.Sprintf("message-%d", len(ln.Messages)),
	}, nil
}

type LocalServer struct {
	Router        *routes.Router
	DynamoDB      *dynamodb.Client
	TableName     string
	Notifications *LocalNotifications
	Username      string
}

func NewLocalServer(t *testing.T) *LocalServer {
	localServer := test.StartLocalServer(test.LOCAL_DDB_PORT+1, t)
	client, err := localServer.CreateLocalClient()
	if err != nil {
		t.Fatalf("Failed to create DDB client: %s", err)
	}
	tableName, err := test.CreateTable(client)
	if err != nil {
		t.Fatalf("Failed to create DDB table: %s", err)
	}
	t.Logf("Successfully created local resources running on %d", localServer.Port)
	marshaler := token.NewGCM()
	itemService := itemData.NewItemService(tableName, *client)
	routeService := catalogData.NewRouteService(tableName, *client)
	shoppingService := shoppingData.NewShoppingListService(tableName, *client, marshaler)
	savedService := savedData.NewSavedListService(tableName, *client, marshaler)
	itemAggregator := aggregation.NewItemAggregator(itemService, routeService)
	collectionAggregator := aggregation.NewCollectionAggregator(itemAggregator, shoppingService, savedService)
	localNotifications := &LocalNotifications{}
	writer := snapshot.NewWriter(shoppingService, savedService, localNotifications, nil)
	router := routes.NewRouter(
		users.NewRoute(userData.NewUserService(tableName, *client)),
		items.NewRoute(itemService, itemAggregator, suggestions.NewFinder(itemService)),
		catalog.NewRoute(routeService, nil),
		shopping.NewRoute(shoppingService, collectionAggregator),
		savedlists.NewRoute(savedService, writer, collectionAggregator),
	)
	return &LocalServer{
		Router:        router,
		DynamoDB:      client,
		TableName:     tableName,
		Notifications: localNotifications,
		Username:      "shopper-123",
	}
}

func (ls *LocalServer) Request(t *testing.T, method string, path string, body []byte, out any, params map[string]string) events.APIGatewayV2HTTPResponse {
	request := events.APIGatewayV2HTTPRequest{
		RawPath:               path,
		QueryStringParameters: params,
		Body:                  string(body),
	}
	request.RequestContext.HTTP.Method = method
	request.RequestContext.HTTP.Path = path
	request.RequestContext.Authorizer = &events.APIGatewayV2HTTPRequestContextAuthorizerDescription{
		JWT: &events.APIGatewayV2HTTPRequestContextAuthorizerJWTDescription{
			Claims: map[string]string{
				"username": ls.Username,
			},
		},
	}
	response := ls.Router.Invoke(request, context.TODO())
	if out != nil && response.StatusCode < 300 {
		if err := json.Unmarshal([]byte(response.Body), &out); err != nil {
			t.Fatalf("Failed to deserialize payload for %s %s: %s", method, path, response.Body)
		}
	}
	return response
}

func (ls *LocalServer) Options(t *testing.T, path string) events.APIGatewayV2HTTPResponse {
	return ls.Request(t, "OPTIONS", path, nil, nil, nil)
}

func (ls *LocalServer) Get(t *testing.T, out any, path string) events.APIGatewayV2HTTPResponse {
	return ls.Request(t, "GET", path, nil, &out, nil)
}

func (ls *LocalServer) Post(t *testing.T, out any, path string, body any) events.APIGatewayV2HTTPResponse {
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to serialize input: %s", err)
	}
	return ls.Request(t, "POST", path, payload, &out, nil)
}

func (ls *LocalServer) Delete(t *testing.T, path string) events.APIGatewayV2HTTPResponse {
	return ls.Request(t, "DELETE", path, nil, nil, nil)
}

func TestRouter(t *testing.T) {
	server := NewLocalServer(t)

	t.Run("UserWorkflow", func(t *testing.T) {
		var created users.User
		resp := server.Post(t, &created, "/users", &users.UserInput{
			UserId: aws.String("shopper-123"),
			Name:   aws.String("Nobody"),
		})
		if resp.StatusCode != 200 {
			t.Fatalf("Response on create %d: %s", resp.StatusCode, resp.Body)
		}
		var fetched users.User
		get := server.Get(t, &fetched, "/users/shopper-123")
		if get.StatusCode != 200 {
			t.Fatalf("Response on get %d: %s", get.StatusCode, get.Body)
		}
		if fetched.Name != "Nobody" {
			t.Fatalf("Expected user Nobody, got %s", fetched.Name)
		}
	})

	t.Run("CatalogWorkflow", func(t *testing.T) {
		legs := []struct {
			origin      string
			destination string
			distance    int
			emissions   int
			leadTime    int
		}{
			{"Spain", "Rotterdam", 100, 20, 2},
			{"Rotterdam", "Dublin", 50, 10, 1},
			{"Ecuador", "Dublin", 5000, 120, 14},
		}
		for _, leg := range legs {
			var created catalog.CatalogRoute
			resp := server.Post(t, &created, "/food/routes", &catalog.RouteInput{
				Origin:      aws.String(leg.origin),
				Destination: aws.String(leg.destination),
				Distance:    aws.Int(leg.distance),
				Emissions:   aws.Int(leg.emissions),
				LeadTime:    aws.Int(leg.leadTime),
			})
			if resp.StatusCode != 200 {
				t.Fatalf("Failed to create route %s -> %s: %d, %s", leg.origin, leg.destination, resp.StatusCode, resp.Body)
			}
		}
		var fetched catalog.CatalogRoute
		get := server.Get(t, &fetched, "/food/routes/Spain/Rotterdam")
		if get.StatusCode != 200 {
			t.Fatalf("Failed to get route: %d, %s", get.StatusCode, get.Body)
		}
		if fetched.Distance != 100 || fetched.Emissions != 20 || fetched.LeadTime != 2 {
			t.Fatalf("Route does not match create: %s", get.Body)
		}
		missing := server.Get(t, nil, "/food/routes/Spain/Dublin")
		if missing.StatusCode != 404 {
			t.Fatalf("Expected 404 on unknown route, got %d: %s", missing.StatusCode, missing.Body)
		}
	})

	t.Run("ItemWorkflow", func(t *testing.T) {
		var created items.Item
		resp := server.Post(t, &created, "/food/items", &items.ItemInput{
			Name:   aws.String("apple"),
			Origin: aws.String("spain"),
			Legs: &[]items.Leg{
				{Origin: "Spain", Destination: "Rotterdam"},
				{Origin: "Rotterdam", Destination: "Dublin"},
			},
		})
		if resp.StatusCode != 200 {
			t.Fatalf("Failed to create item: %d, %s", resp.StatusCode, resp.Body)
		}
		if created.Name != "Apple" || created.Origin != "Spain" {
			t.Fatalf("Create did not normalize: %s", resp.Body)
		}
		dup := server.Post(t, nil, "/food/items", &items.ItemInput{
			Name:   aws.String("Apple"),
			Origin: aws.String("Spain"),
			Legs: &[]items.Leg{
				{Origin: "Spain", Destination: "Dublin"},
			},
		})
		if dup.StatusCode != 409 {
			t.Fatalf("Expected conflict on duplicate item, got %d: %s", dup.StatusCode, dup.Body)
		}
		banana := server.Post(t, nil, "/food/items", &items.ItemInput{
			Name:   aws.String("Banana"),
			Origin: aws.String("Ecuador"),
			Legs: &[]items.Leg{
				{Origin: "Ecuador", Destination: "Dublin"},
			},
		})
		if banana.StatusCode != 200 {
			t.Fatalf("Failed to create item: %d, %s", banana.StatusCode, banana.Body)
		}

		var detail items.ItemDetail
		get := server.Get(t, &detail, "/food/items/Apple/Spain")
		if get.StatusCode != 200 {
			t.Fatalf("Failed to get item detail: %d, %s", get.StatusCode, get.Body)
		}
		if detail.Distance != 150 || detail.Emissions != 30 || detail.LeadTime != 3 {
			t.Fatalf("Expected totals {150 30 3}, got %s", get.Body)
		}
		if len(detail.Legs) != 2 {
			t.Fatalf("Expected 2 legs, got %s", get.Body)
		}

		// Lookup keys normalize the same way writes do.
		lower := server.Get(t, &detail, "/food/items/apple/spain")
		if lower.StatusCode != 200 {
			t.Fatalf("Lower case lookup failed: %d, %s", lower.StatusCode, lower.Body)
		}

		miss := server.Get(t, nil, "/food/items/Banana/Unknown")
		if miss.StatusCode != 404 {
			t.Fatalf("Expected 404, got %d: %s", miss.StatusCode, miss.Body)
		}
		var body items.NotFoundBody
		if err := json.Unmarshal([]byte(miss.Body), &body); err != nil {
			t.Fatalf("Failed to deserialize not found body: %s", miss.Body)
		}
		if len(body.Suggestions) != 1 || body.Suggestions[0].Origin != "Ecuador" {
			t.Fatalf("Expected a Banana,Ecuador suggestion, got %s", miss.Body)
		}
	})

	t.Run("ShoppingListWorkflow", func(t *testing.T) {
		for _, input := range []shopping.EntryInput{
			{Name: aws.String("Apple"), Origin: aws.String("Spain")},
			{Name: aws.String("Banana"), Origin: aws.String("Ecuador")},
		} {
			resp := server.Post(t, nil, "/lists/items", &input)
			if resp.StatusCode != 200 {
				t.Fatalf("Failed to add entry: %d, %s", resp.StatusCode, resp.Body)
			}
		}
		var results data.QueryResults[shopping.Entry]
		list := server.Get(t, &results, "/lists")
		if len(results.Items) != 2 {
			t.Fatalf("Expected 2 entries, got %s", list.Body)
		}
		var summary aggregation.CollectionSummary
		details := server.Get(t, &summary, "/lists/details")
		if details.StatusCode != 200 {
			t.Fatalf("Failed to get details: %d, %s", details.StatusCode, details.Body)
		}
		if summary.TotalDistance != 5150 || summary.TotalEmissions != 150 || summary.TotalLeadTime != 17 {
			t.Fatalf("Expected totals {5150 150 17}, got %s", details.Body)
		}
		if len(summary.Items) != 2 {
			t.Fatalf("Expected 2 summaries, got %s", details.Body)
		}

		removed := server.Delete(t, "/lists/items/Banana/Ecuador")
		if removed.StatusCode != 204 {
			t.Fatalf("Expected 204 on remove, got %d: %s", removed.StatusCode, removed.Body)
		}
		details = server.Get(t, &summary, "/lists/details")
		if summary.TotalDistance != 150 || summary.TotalEmissions != 30 || summary.TotalLeadTime != 3 {
			t.Fatalf("Expected totals {150 30 3} after remove, got %s", details.Body)
		}
	})

	t.Run("SavedListWorkflow", func(t *testing.T) {
		resp := server.Post(t, nil, "/lists/items", &shopping.EntryInput{
			Name:   aws.String("Banana"),
			Origin: aws.String("Ecuador"),
		})
		if resp.StatusCode != 200 {
			t.Fatalf("Failed to add entry: %d, %s", resp.StatusCode, resp.Body)
		}
		var saved savedlists.SavedList
		save := server.Post(t, &saved, "/lists/save", &savedlists.SaveInput{
			Items: &[]data.ItemRef{
				{Name: "Apple", Origin: "Spain"},
				{Name: "Banana", Origin: "Ecuador"},
			},
		})
		if save.StatusCode != 200 {
			t.Fatalf("Failed to save list: %d, %s", save.StatusCode, save.Body)
		}
		if len(saved.ItemIds) != 2 || saved.ListId == "" {
			t.Fatalf("Unexpected saved list: %s", save.Body)
		}
		if len(server.Notifications.Messages) != 1 {
			t.Fatalf("Expected a saved list notification, got %d", len(server.Notifications.Messages))
		}

		var entries data.QueryResults[shopping.Entry]
		list := server.Get(t, &entries, "/lists")
		if len(entries.Items) != 0 {
			t.Fatalf("Expected the live list to be cleared, got %s", list.Body)
		}

		var lists data.QueryResults[savedlists.SavedList]
		savedLists := server.Get(t, &lists, "/lists/saved")
		if len(lists.Items) != 1 || lists.Items[0].ListId != saved.ListId {
			t.Fatalf("Expected 1 saved list, got %s", savedLists.Body)
		}

		var summary aggregation.CollectionSummary
		details := server.Get(t, &summary, fmt.Sprintf("/lists/saved/%s/details", saved.ListId))
		if details.StatusCode != 200 {
			t.Fatalf("Failed to get saved details: %d, %s", details.StatusCode, details.Body)
		}
		if summary.TotalDistance != 5150 {
			t.Fatalf("Expected total distance 5150, got %s", details.Body)
		}
		// Re-reads are deterministic while the catalog stands still.
		again := server.Get(t, &summary, fmt.Sprintf("/lists/saved/%s/details", saved.ListId))
		if again.Body != details.Body {
			t.Fatalf("Saved details changed between reads: %s != %s", again.Body, details.Body)
		}

		empty := server.Post(t, nil, "/lists/save", &savedlists.SaveInput{})
		if empty.StatusCode != 400 {
			t.Fatalf("Expected 400 on empty save, got %d: %s", empty.StatusCode, empty.Body)
		}
	})

	t.Run("AmbiguousItemKey", func(t *testing.T) {
		resp := server.Post(t, nil, "/food/items", &items.ItemInput{
			Name:   aws.String("Apple, Fuji"),
			Origin: aws.String("Spain"),
			Legs: &[]items.Leg{
				{Origin: "Spain", Destination: "Dublin"},
			},
		})
		if resp.StatusCode != 400 {
			t.Fatalf("Expected 400 on delimiter in name, got %d: %s", resp.StatusCode, resp.Body)
		}
	})

	t.Run("Unauthorized", func(t *testing.T) {
		request := events.APIGatewayV2HTTPRequest{RawPath: "/lists"}
		request.RequestContext.HTTP.Method = "GET"
		response := server.Router.Invoke(request, context.TODO())
		if response.StatusCode != 401 {
			t.Fatalf("Expected 401 without claims, got %d: %s", response.StatusCode, response.Body)
		}
	})

	t.Run("UnknownRoute", func(t *testing.T) {
		missing := server.Get(t, nil, "/nothing/here")
		if missing.StatusCode != 404 {
			t.Fatalf("Expected 404, got %d: %s", missing.StatusCode, missing.Body)
		}
	})

	t.Run("CorsPreflight", func(t *testing.T) {
		preflight := server.Options(t, "/lists")
		if preflight.StatusCode != 200 {
			t.Fatalf("Received a %d status code, expected 200", preflight.StatusCode)
		}
		if preflight.Body != "" {
			t.Fatalf("Received a response body for OPTIONS: %s", preflight.Body)
		}
		expected := map[string]string{
			"content-length":               "0",
			"access-control-allow-headers": "Content-Type, Content-Length, Authorization",
			"access-control-allow-methods": "GET, PUT, POST, DELETE",
			"access-control-allow-origin":  "*",
		}
		if !maps.Equal(preflight.Headers, expected) {
			t.Fatalf("Headers from preflight %v, do not match expected %v", preflight.Headers, expected)
		}
	})
}
