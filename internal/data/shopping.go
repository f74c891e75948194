package data

import "time"

type ShoppingListEntryDTO struct {
	PK         string    `dynamodbav:"PK"`
	SK         string    `dynamodbav:"SK"`
	UserId     string    `dynamodbav:"userId"`
	ItemId     string    `dynamodbav:"itemId"`
	CreateTime time.Time `dynamodbav:"createTime"`
}

type ShoppingListDataService interface {
	QueryEntries(userId string, params QueryParams) (QueryResults[ShoppingListEntryDTO], error)
	PutEntry(userId string, ref ItemRef) (ShoppingListEntryDTO, error)
	DeleteEntry(userId string, itemId string) error
}
