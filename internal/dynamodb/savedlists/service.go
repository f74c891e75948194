package savedlists

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
	"github.com/caoimherice/FoodMiles/internal/exceptions"
	"github.com/google/uuid"
)

type SavedListDynamoDBService struct {
	DynamoDB       dynamodb.Client
	TableName      string
	TokenMarshaler token.TokenMarshaler
}

func NewSavedListService(tableName string, client dynamodb.Client, marshaler token.TokenMarshaler) data.SavedListDataService {
	return &SavedListDynamoDBService{
		DynamoDB:       client,
		TableName:      tableName,
		TokenMarshaler: marshaler,
	}
}

func _getPrimaryKey(userId string) string {
	return userId + ":SavedList"
}

// QuerySavedLists returns a user's saved lists in creation order; the sort
// key is the RFC3339Nano creation timestamp.
func (ss *SavedListDynamoDBService) QuerySavedLists(userId string, params data.QueryParams) (data.QueryResults[data.SavedListDTO], error) {
	keyEx := expression.Key("PK").Equal(expression.Value(_getPrimaryKey(userId)))
	expr, err := expression.NewBuilder().WithKeyCondition(keyEx).Build()
	if err != nil {
		return data.QueryResults[data.SavedListDTO]{}, err
	}
	var items []data.SavedListDTO
	var startKey map[string]types.AttributeValue
	startKey, err = ss.TokenMarshaler.Unmarshal(userId, params.NextToken)
	if err != nil {
		return data.QueryResults[data.SavedListDTO]{}, err
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
		return data.QueryResults[data.SavedListDTO]{}, err
	}
	err = attributevalue.UnmarshalListOfMaps(output.Items, &items)
	if err != nil {
		return data.QueryResults[data.SavedListDTO]{}, err
	}
	nextToken, err := ss.TokenMarshaler.Marshal(userId, output.LastEvaluatedKey)
	if err != nil {
		return data.QueryResults[data.SavedListDTO]{}, err
	}
	return data.QueryResults[data.SavedListDTO]{
		Items:     items,
		NextToken: nextToken,
	}, nil
}

func (ss *SavedListDynamoDBService) GetSavedList(userId string, listId string) (data.SavedListDTO, error) {
	keyEx := expression.Key("PK").Equal(expression.Value(_getPrimaryKey(userId)))
	filter := expression.Name("listId").Equal(expression.Value(listId))
	expr, err := expression.NewBuilder().WithKeyCondition(keyEx).WithFilter(filter).Build()
	if err != nil {
		return data.SavedListDTO{}, err
	}
	output, err := ss.DynamoDB.Query(context.TODO(), &dynamodb.QueryInput{
		TableName:                 aws.String(ss.TableName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return data.SavedListDTO{}, err
	}
	var items []data.SavedListDTO
	if err := attributevalue.UnmarshalListOfMaps(output.Items, &items); err != nil {
		return data.SavedListDTO{}, err
	}
	if len(items) == 0 {
		return data.SavedListDTO{}, exceptions.NotFound("savedList", listId)
	}
	return items[0], nil
}

func (ss *SavedListDynamoDBService) PutSavedList(userId string, input data.SavedListInputDTO) (data.SavedListDTO, error) {
	if input.ItemIds == nil || len(*input.ItemIds) == 0 {
		return data.SavedListDTO{}, exceptions.InvalidInput("Please provide a non-empty \"items\" list")
	}
	gid, err := uuid.NewUUID()
	if err != nil {
		return data.SavedListDTO{}, err
	}
	now := time.Now()
	shim := data.SavedListDTO{
		PK:         _getPrimaryKey(userId),
		SK:         now.UTC().Format(time.RFC3339Nano),
		ListId:     gid.String(),
		ItemIds:    *input.ItemIds,
		CreateTime: now,
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
