package data

import "time"

// SavedListDTO is a frozen selection, not a frozen measurement: it stores
// item ids only, so totals recomputed later pick up catalog updates.
type SavedListDTO struct {
	PK         string    `dynamodbav:"PK"`
	SK         string    `dynamodbav:"SK"`
	ListId     string    `dynamodbav:"listId"`
	ItemIds    []string  `dynamodbav:"itemIds"`
	CreateTime time.Time `dynamodbav:"createTime"`
}

type SavedListInputDTO struct {
	ItemIds *[]string `dynamodbav:"itemIds"`
}

type SavedListDataService interface {
	QuerySavedLists(userId string, params QueryParams) (QueryResults[SavedListDTO], error)
	GetSavedList(userId string, listId string) (SavedListDTO, error)
	PutSavedList(userId string, input SavedListInputDTO) (SavedListDTO, error)
}
