package users

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

type UserDynamoDBService struct {
	DynamoDB  dynamodb.Client
	TableName string
}

func NewUserService(tableName string, client dynamodb.Client) data.UserDataService {
	return &UserDynamoDBService{
		DynamoDB:  client,
		TableName: tableName,
	}
}

func _getKey(userId string) (map[string]types.AttributeValue, error) {
	pk, err := attributevalue.Marshal("User:" + userId)
	if err != nil {
		return nil, err
	}
	sk, err := attributevalue.Marshal(userId)
	if err != nil {
		return nil, err
	}
	return map[string]types.AttributeValue{"PK": pk, "SK": sk}, nil
}

func (us *UserDynamoDBService) GetUser(userId string) (data.UserDTO, error) {
	shim := data.UserDTO{PK: "User:" + userId, SK: userId}
	key, err := _getKey(userId)
	if err != nil {
		return shim, err
	}
	response, err := us.DynamoDB.GetItem(context.TODO(), &dynamodb.GetItemInput{
		TableName: aws.String(us.TableName),
		Key:       key,
	})
	if err != nil {
		return shim, err
	}
	if response.Item == nil {
		return shim, exceptions.NotFound("user", userId)
	}
	err = attributevalue.UnmarshalMap(response.Item, &shim)
	return shim, err
}

func (us *UserDynamoDBService) PutUser(input data.UserInputDTO) (data.UserDTO, error) {
	if input.UserId == nil || input.Name == nil {
		return data.UserDTO{}, exceptions.InvalidInput("Please provide both \"userId\" and \"name\"")
	}
	shim := data.UserDTO{
		PK:         "User:" + *input.UserId,
		SK:         *input.UserId,
		UserId:     *input.UserId,
		Name:       *input.Name,
		CreateTime: time.Now(),
	}
	item, err := attributevalue.MarshalMap(shim)
	if err != nil {
		return shim, err
	}
	_, err = us.DynamoDB.PutItem(context.TODO(), &dynamodb.PutItemInput{
		Item:      item,
		TableName: aws.String(us.TableName),
	})
	return shim, err
}
