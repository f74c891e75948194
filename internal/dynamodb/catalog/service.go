package catalog

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/caoimherice/FoodMiles/internal/data"
	"github.com/caoimherice/FoodMiles/internal/exceptions"
)

type RouteDynamoDBService struct {
	DynamoDB  dynamodb.Client
	TableName string
}

func NewRouteService(tableName string, client dynamodb.Client) data.RouteDataService {
	return &RouteDynamoDBService{
		DynamoDB:  client,
		TableName: tableName,
	}
}

func _getPrimaryKey(origin string) string {
	return "Route:" + origin
}

func _getKey(origin string, destination string) (map[string]types.AttributeValue, error) {
	pk, err := attributevalue.Marshal(_getPrimaryKey(origin))
	if err != nil {
		return nil, err
	}
	sk, err := attributevalue.Marshal(destination)
	if err != nil {
		return nil, err
	}
	return map[string]types.AttributeValue{"PK": pk, "SK": sk}, nil
}

func _routeId(origin string, destination string) string {
	return origin + " -> " + destination
}

func (rs *RouteDynamoDBService) GetRoute(origin string, destination string) (data.RouteDTO, error) {
	origin = data.Normalize(origin)
	destination = data.Normalize(destination)
	shim := data.RouteDTO{PK: _getPrimaryKey(origin), SK: destination}
	key, err := _getKey(origin, destination)
	if err != nil {
		return shim, err
	}
	response, err := rs.DynamoDB.GetItem(context.TODO(), &dynamodb.GetItemInput{
		TableName: aws.String(rs.TableName),
		Key:       key,
	})
	if err != nil {
		return shim, err
	}
	if response.Item == nil {
		return shim, exceptions.NotFound("route", _routeId(origin, destination))
	}
	err = attributevalue.UnmarshalMap(response.Item, &shim)
	return shim, err
}

func (rs *RouteDynamoDBService) PutRoute(input data.RouteInputDTO) (data.RouteDTO, error) {
	if input.Origin == nil || input.Destination == nil {
		return data.RouteDTO{}, exceptions.InvalidInput("Please provide both \"origin\" and \"destination\"")
	}
	if input.Distance == nil || input.Emissions == nil || input.LeadTime == nil {
		return data.RouteDTO{}, exceptions.InvalidInput("Please provide \"distance\", \"emissions\" and \"leadTime\"")
	}
	origin := data.Normalize(*input.Origin)
	destination := data.Normalize(*input.Destination)
	shim := data.RouteDTO{
		PK:          _getPrimaryKey(origin),
		SK:          destination,
		Origin:      origin,
		Destination: destination,
		Distance:    *input.Distance,
		Emissions:   *input.Emissions,
		LeadTime:    *input.LeadTime,
		CreateTime:  time.Now(),
	}
	if input.OriginLatLng != nil {
		shim.OriginLatLng = *input.OriginLatLng
	}
	if input.DestinationLatLng != nil {
		shim.DestinationLatLng = *input.DestinationLatLng
	}
	if input.TransportMode != nil {
		shim.TransportMode = *input.TransportMode
	}
	if input.Coordinates != nil {
		shim.Coordinates = *input.Coordinates
	}
	item, err := attributevalue.MarshalMap(shim)
	if err != nil {
		return shim, err
	}
	_, err = rs.DynamoDB.PutItem(context.TODO(), &dynamodb.PutItemInput{
		Item:      item,
		TableName: aws.String(rs.TableName),
	})
	return shim, err
}
