package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/caoimherice/FoodMiles/internal/aggregation"
	catalogData "github.com/caoimherice/FoodMiles/internal/dynamodb/catalog"
	itemData "github.com/caoimherice/FoodMiles/internal/dynamodb/items"
	savedListData "github.com/caoimherice/FoodMiles/internal/dynamodb/savedlists"
	shoppingData "github.com/caoimherice/FoodMiles/internal/dynamodb/shopping"
	"github.com/caoimherice/FoodMiles/internal/dynamodb/token"
	userData "github.com/caoimherice/FoodMiles/internal/dynamodb/users"
	"github.com/caoimherice/FoodMiles/internal/planner"
	"github.com/caoimherice/FoodMiles/internal/routes"
	"github.com/caoimherice/FoodMiles/internal/routes/catalog"
	"github.com/caoimherice/FoodMiles/internal/routes/items"
	"github.com/caoimherice/FoodMiles/internal/routes/savedlists"
	"github.com/caoimherice/FoodMiles/internal/routes/shopping"
	"github.com/caoimherice/FoodMiles/internal/routes/users"
	"github.com/caoimherice/FoodMiles/internal/snapshot"
	snsServices "github.com/caoimherice/FoodMiles/internal/sns/services"
	"github.com/caoimherice/FoodMiles/internal/suggestions"
	"github.com/sirupsen/logrus"
)

type App struct {
	Router routes.Router
}

func NewApp() App {
	tableName := os.Getenv("TABLE_NAME")
	topicArn := os.Getenv("TOPIC_ARN")
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.WithError(err).Fatal("Failed to load AWS config")
	}
	client := dynamodb.NewFromConfig(cfg)
	snsClient := sns.NewFromConfig(cfg)
	marshaler := token.NewGCM()

	itemService := itemData.NewItemService(tableName, *client)
	routeService := catalogData.NewRouteService(tableName, *client)
	shoppingService := shoppingData.NewShoppingListService(tableName, *client, marshaler)
	savedListService := savedListData.NewSavedListService(tableName, *client, marshaler)
	userService := userData.NewUserService(tableName, *client)

	itemAggregator := aggregation.NewItemAggregator(itemService, routeService)
	collectionAggregator := aggregation.NewCollectionAggregator(itemAggregator, shoppingService, savedListService)
	finder := suggestions.NewFinder(itemService)
	writer := snapshot.NewWriter(shoppingService, savedListService, &snsServices.NotificationSNSService{
		Sns:      *snsClient,
		TopicArn: topicArn,
	}, log)

	var routePlanner planner.RoutePlanner
	if endpoint := os.Getenv("PLANNER_ENDPOINT"); endpoint != "" {
		routePlanner = planner.NewDirectionsAPI(endpoint, os.Getenv("PLANNER_API_KEY"))
	}

	router := routes.NewRouter(
		users.NewRoute(userService),
		items.NewRoute(itemService, itemAggregator, finder),
		catalog.NewRoute(routeService, routePlanner),
		shopping.NewRoute(shoppingService, collectionAggregator),
		savedlists.NewRoute(savedListService, writer, collectionAggregator),
	)
	return App{
		Router: *router,
	}
}

func (app *App) HandleRequest(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return app.Router.Invoke(request, ctx), nil
}

func main() {
	app := NewApp()
	lambda.Start(app.HandleRequest)
}
