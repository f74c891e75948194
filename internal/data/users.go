package data

import "time"

type UserDTO struct {
	PK         string    `dynamodbav:"PK"`
	SK         string    `dynamodbav:"SK"`
	UserId     string    `dynamodbav:"userId"`
	Name       string    `dynamodbav:"name"`
	CreateTime time.Time `dynamodbav:"createTime"`
}

type UserInputDTO struct {
	UserId *string `dynamodbav:"userId"`
	Name   *string `dynamodbav:"name"`
}

type UserDataService interface {
	GetUser(userId string) (UserDTO, error)
	PutUser(input UserInputDTO) (UserDTO, error)
}
