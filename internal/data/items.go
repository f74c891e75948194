package data

import (
	"strings"
	"time"
	"unicode"

	"github.com/caoimherice/FoodMiles/internal/exceptions"
)

// ItemDelimiter joins a name and an origin into the stored item id. The
// original tables keyed shopping list rows on the literal concatenation
// "name,origin", so the delimiter is load-bearing: names and origins
// containing a comma are rejected at the write boundary.
const ItemDelimiter = ","

// ItemRef is the composite identity of a food item. Everything above the
// storage layer passes one of these around instead of the joined string.
type ItemRef struct {
	Name   string `json:"name"`
	Origin string `json:"origin"`
}

func (r ItemRef) ItemId() string {
	return r.Name + ItemDelimiter + r.Origin
}

// NewItemRef normalizes and validates a (name, origin) pair.
func NewItemRef(name string, origin string) (ItemRef, error) {
	ref := ItemRef{
		Name:   Normalize(name),
		Origin: Normalize(origin),
	}
	if ref.Name == "" || ref.Origin == "" {
		return ref, exceptions.InvalidInput("Please provide both \"name\" and \"origin\"")
	}
	if strings.Contains(ref.Name, ItemDelimiter) || strings.Contains(ref.Origin, ItemDelimiter) {
		return ref, exceptions.AmbiguousKey(ref.ItemId())
	}
	return ref, nil
}

// ParseItemId splits a stored item id back into its ref. A row whose id
// does not split into exactly two parts is surfaced loudly rather than
// silently truncated.
func ParseItemId(itemId string) (ItemRef, error) {
	parts := strings.Split(itemId, ItemDelimiter)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return ItemRef{}, exceptions.AmbiguousKey(itemId)
	}
	return ItemRef{Name: parts[0], Origin: parts[1]}, nil
}

// Normalize is the single casing rule for names, origins and locations:
// surrounding space stripped, first rune upper-cased. Applied on every
// write and on lookup keys, so reads never guess at capitalization.
func Normalize(field string) string {
	trimmed := strings.TrimSpace(field)
	if trimmed == "" {
		return trimmed
	}
	runes := []rune(trimmed)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

type LegDTO struct {
	Origin      string `dynamodbav:"origin" json:"origin"`
	Destination string `dynamodbav:"destination" json:"destination"`
}

type ItemDTO struct {
	PK         string    `dynamodbav:"PK"`
	SK         string    `dynamodbav:"SK"`
	Name       string    `dynamodbav:"name"`
	Origin     string    `dynamodbav:"origin"`
	Legs       []LegDTO  `dynamodbav:"legs"`
	CreateTime time.Time `dynamodbav:"createTime"`
}

type ItemInputDTO struct {
	Name   *string   `dynamodbav:"name"`
	Origin *string   `dynamodbav:"origin"`
	Legs   *[]LegDTO `dynamodbav:"legs"`
}

// ItemFilter narrows a catalog scan. Matching is equality on either
// field, not a substring search.
type ItemFilter struct {
	Name   string
	Origin string
}

type ItemDataService interface {
	GetItem(ref ItemRef) (ItemDTO, error)
	PutItem(input ItemInputDTO) (ItemDTO, error)
	ScanItems(filter ItemFilter) ([]ItemDTO, error)
}
