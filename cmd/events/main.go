package main

import (
	"context"
	"os"

	lambdaEvents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	shoppingData "github.com/caoimherice/FoodMiles/internal/dynamodb/shopping"
	"github.com/caoimherice/FoodMiles/internal/dynamodb/token"
	"github.com/caoimherice/FoodMiles/internal/events"
	"github.com/sirupsen/logrus"
)

func HandleRequest(ctx context.Context, event lambdaEvents.DynamoDBEvent) error {
	tableName := os.Getenv("TABLE_NAME")
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return err
	}

	client := dynamodb.NewFromConfig(cfg)
	marshaler := token.NewGCM()
	shoppingService := shoppingData.NewShoppingListService(tableName, *client, marshaler)

	handlers := []events.EventFilter{
		events.DefaultReconcileSnapshotHandler(shoppingService, log),
	}

	for _, record := range event.Records {
		for _, handler := range handlers {
			if handler.Filter(record) {
				if err := handler.Apply(record); err != nil {
					log.WithField("eventId", record.EventID).WithError(err).Error("failed to handle stream record")
					break
				}
			}
		}
	}

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
