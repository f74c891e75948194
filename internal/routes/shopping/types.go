package shopping

import (
	"time"

	"github.com/caoimherice/FoodMiles/internal/data"
)

type EntryInput struct {
	Name   *string `json:"name"`
	Origin *string `json:"origin"`
}

type Entry struct {
	ItemId     string    `json:"itemId"`
	Name       string    `json:"name"`
	Origin     string    `json:"origin"`
	CreateTime time.Time `json:"createTime"`
}

func NewEntry(dto data.ShoppingListEntryDTO) Entry {
	entry := Entry{
		ItemId:     dto.ItemId,
		CreateTime: dto.CreateTime,
	}
	if ref, err := data.ParseItemId(dto.ItemId); err == nil {
		entry.Name = ref.Name
		entry.Origin = ref.Origin
	}
	return entry
}
