package savedlists

import (
	"time"

	"github.com/caoimherice/FoodMiles/internal/data"
)

type SaveInput struct {
	Items *[]data.ItemRef `json:"items"`
}

type SavedList struct {
	ListId     string    `json:"listId"`
	ItemIds    []string  `json:"itemIds"`
	CreateTime time.Time `json:"createTime"`
}

func NewSavedList(dto data.SavedListDTO) SavedList {
	return SavedList{
		ListId:     dto.ListId,
		ItemIds:    dto.ItemIds,
		CreateTime: dto.CreateTime,
	}
}
