package shopping

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/caoimherice/FoodMiles/internal/data"
	"github.com/caoimherice/FoodMiles/internal/dynamodb/token"
)

type ShoppingListDynamoDBService struct {
	DynamoDB       dynamodb.Client
	TableName      string
	TokenMarshaler token.TokenMarshaler
}

func NewShoppingListService(tableName string, client dynamodb.Client, marshaler token.TokenMarshaler) data.ShoppingListDataService {
	return &ShoppingListDynamoDBService{
		DynamoDB:       client,
		TableName:      tableName,
		TokenMarshaler: marshaler,
	}
}

func _getPrimaryKey(userId string) string {
	return userId + ":ShoppingList"
}

func _getKey(userId string, itemId string) (map[string]types.AttributeValue, error) {
	pk, err := attributevalue.Marshal(_getPrimaryKey(userId))
	if err != nil {
		return nil, err
	}
	sk, err := attributevalue.Marshal(itemId)
	if err != nil {
		return nil, err
	}
	return map[string]types.AttributeValue{"PK": pk, "SK": sk}, nil
}

func (ss *ShoppingListDynamoDBService) QueryEntries(userId string, params data.QueryParams) (data.QueryResults[data.ShoppingListEntryDTO], error) {
	keyEx := expression.Key("PK").Equal(expression.Value(_getPrimaryKey(userId)))
	expr, err := expression.NewBuilder().WithKeyCondition(keyEx).Build()
	if err != nil {
		return data.QueryResults[data.ShoppingListEntryDTO]{}, err
	}
	var items []data.ShoppingListEntryDTO
	var startKey map[string]types.AttributeValue
	startKey, err = ss.TokenMarshaler.Unmarshal(userId, params.NextToken)
	if err != nil {
		return data.QueryResults[data.ShoppingListEntryDTO]{}, err
	}
	output, err := ss.DynamoDB.Query(context.TODO(), &dynamodb.QueryInput{
		TableName:                 aws.String(ss.TableName),
		Limit:                     params.GetLimit(),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ExclusiveStartKey:         startKey,
	})
	if err != nil {
		return data.QueryResults[data.ShoppingListEntryDTO]{}, err
	}
	err = attributevalue.UnmarshalListOfMaps(output.Items, &items)
	if err != nil {
		return data.QueryResults[data.ShoppingListEntryDTO]{}, err
	}
	nextToken, err := ss.TokenMarshaler.Marshal(userId, output.LastEvaluatedKey)
	if err != nil {
		return data.QueryResults[data.ShoppingListEntryDTO]{}, err
	}
	return data.QueryResults[data.ShoppingListEntryDTO]{
		Items:     items,
		NextToken: nextToken,
	}, nil
}

func (ss *ShoppingListDynamoDBService) PutEntry(userId string, ref data.ItemRef) (data.ShoppingListEntryDTO, error) {
	shim := data.ShoppingListEntryDTO{
		PK:         _getPrimaryKey(userId),
		SK:         ref.ItemId(),
		UserId:     userId,
		ItemId:     ref.ItemId(),
		CreateTime: time.Now(),
	}
	item, err := attributevalue.MarshalMap(shim)
	if err != nil {
		return shim, err
	}
	_, err = ss.DynamoDB.PutItem(context.TODO(), &dynamodb.PutItemInput{
		Item:      item,
		TableName: aws.String(ss.TableName),
	})
	return shim, err
}

func (ss *ShoppingListDynamoDBService) DeleteEntry(userId string, itemId string) error {
	key, err := _getKey(userId, itemId)
	if err != nil {
		return err
	}
	_, err = ss.DynamoDB.DeleteItem(context.TODO(), &dynamodb.DeleteItemInput{
		Key:       key,
		TableName: aws.String(ss.TableName),
	})
	return err
}
