package items

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/caoimherice/FoodMiles/internal/data"
	"github.com/caoimherice/FoodMiles/internal/exceptions"
)

type ItemDynamoDBService struct {
	DynamoDB  dynamodb.Client
	TableName string
}

func NewItemService(tableName string, client dynamodb.Client) data.ItemDataService {
	return &ItemDynamoDBService{
		DynamoDB:  client,
		TableName: tableName,
	}
}

func _getPrimaryKey(name string) string {
	return "Item:" + name
}

func _getKey(ref data.ItemRef) (map[string]types.AttributeValue, error) {
	pk, err := attributevalue.Marshal(_getPrimaryKey(ref.Name))
	if err != nil {
		return nil, err
	}
	sk, err := attributevalue.Marshal(ref.Origin)
	if err != nil {
		return nil, err
	}
	return map[string]types.AttributeValue{"PK": pk, "SK": sk}, nil
}

func (is *ItemDynamoDBService) GetItem(ref data.ItemRef) (data.ItemDTO, error) {
	shim := data.ItemDTO{PK: _getPrimaryKey(ref.Name), SK: ref.Origin}
	key, err := _getKey(ref)
	if err != nil {
		return shim, err
	}
	response, err := is.DynamoDB.GetItem(context.TODO(), &dynamodb.GetItemInput{
		TableName: aws.String(is.TableName),
		Key:       key,
	})
	if err != nil {
		return shim, err
	}
	if response.Item == nil {
		return shim, exceptions.NotFound("item", ref.ItemId())
	}
	err = attributevalue.UnmarshalMap(response.Item, &shim)
	return shim, err
}

func (is *ItemDynamoDBService) PutItem(input data.ItemInputDTO) (data.ItemDTO, error) {
	if input.Name == nil || input.Origin == nil || input.Legs == nil || len(*input.Legs) == 0 {
		return data.ItemDTO{}, exceptions.InvalidInput("Please provide \"name\", \"origin\" and \"legs\"")
	}
	ref, err := data.NewItemRef(*input.Name, *input.Origin)
	if err != nil {
		return data.ItemDTO{}, err
	}
	legs := make([]data.LegDTO, len(*input.Legs))
	for i, leg := range *input.Legs {
		legs[i] = data.LegDTO{
			Origin:      data.Normalize(leg.Origin),
			Destination: data.Normalize(leg.Destination),
		}
		if legs[i].Origin == "" || legs[i].Destination == "" {
			return data.ItemDTO{}, exceptions.InvalidInput("Every leg needs an \"origin\" and a \"destination\"")
		}
	}
	shim := data.ItemDTO{
		PK:         _getPrimaryKey(ref.Name),
		SK:         ref.Origin,
		Name:       ref.Name,
		Origin:     ref.Origin,
		Legs:       legs,
		CreateTime: time.Now(),
	}
	item, err := attributevalue.MarshalMap(shim)
	if err != nil {
		return shim, err
	}
	expr, err := expression.NewBuilder().WithCondition(expression.Name("PK").AttributeNotExists().And(expression.Name("SK").AttributeNotExists())).Build()
	if err != nil {
		return shim, err
	}
	_, err = is.DynamoDB.PutItem(context.TODO(), &dynamodb.PutItemInput{
		Item:                     item,
		TableName:                aws.String(is.TableName),
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil {
		var check *types.ConditionalCheckFailedException
		if errors.As(err, &check) {
			return shim, exceptions.Conflict("item", ref.ItemId())
		}
		return shim, err
	}
	return shim, err
}

// ScanItems walks the whole catalog filtering on name or origin equality.
// Only the not-found suggestion path uses it, so the O(catalog) cost is
// confined to requests that already failed their point lookup.
func (is *ItemDynamoDBService) ScanItems(filter data.ItemFilter) ([]data.ItemDTO, error) {
	cond := expression.Name("PK").BeginsWith("Item:").And(
		expression.Name("name").Equal(expression.Value(data.Normalize(filter.Name))).Or(
			expression.Name("origin").Equal(expression.Value(data.Normalize(filter.Origin)))))
	expr, err := expression.NewBuilder().WithFilter(cond).Build()
	if err != nil {
		return nil, err
	}
	var items []data.ItemDTO
	var startKey map[string]types.AttributeValue
	for {
		output, err := is.DynamoDB.Scan(context.TODO(), &dynamodb.ScanInput{
			TableName:                 aws.String(is.TableName),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, err
		}
		var page []data.ItemDTO
		if err := attributevalue.UnmarshalListOfMaps(output.Items, &page); err != nil {
			return nil, err
		}
		items = append(items, page...)
		startKey = output.LastEvaluatedKey
		if startKey == nil {
			break
		}
	}
	return items, nil
}
