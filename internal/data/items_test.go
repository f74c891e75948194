package data_test

import (
	"errors"
	"testing"

	"github.com/caoimherice/FoodMiles/internal/data"
	"github.com/caoimherice/FoodMiles/internal/exceptions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItemRef(t *testing.T) {
	ref, err := data.NewItemRef("apple", "spain")
	require.NoError(t, err)
	assert.Equal(t, "Apple", ref.Name)
	assert.Equal(t, "Spain", ref.Origin)
	assert.Equal(t, "Apple,Spain", ref.ItemId())

	ref, err = data.NewItemRef("  banana  ", " ecuador ")
	require.NoError(t, err)
	assert.Equal(t, "Banana,Ecuador", ref.ItemId())

	_, err = data.NewItemRef("", "Spain")
	var iie *exceptions.InvalidInputError
	require.True(t, errors.As(err, &iie))

	_, err = data.NewItemRef("Apple", "   ")
	require.True(t, errors.As(err, &iie))

	_, err = data.NewItemRef("Apple, Fuji", "Spain")
	var ake *exceptions.AmbiguousKeyError
	require.True(t, errors.As(err, &ake))
	assert.Equal(t, 400, ake.ToServiceError().StatusCode)

	_, err = data.NewItemRef("Apple", "Spain, Andalusia")
	require.True(t, errors.As(err, &ake))
}

func TestParseItemId(t *testing.T) {
	ref, err := data.ParseItemId("Apple,Spain")
	require.NoError(t, err)
	assert.Equal(t, data.ItemRef{Name: "Apple", Origin: "Spain"}, ref)

	var ake *exceptions.AmbiguousKeyError
	for _, itemId := range []string{"Apple", "Apple,Fuji,Spain", ",Spain", "Apple,", ""} {
		_, err := data.ParseItemId(itemId)
		require.True(t, errors.As(err, &ake), "expected ambiguous key for %q", itemId)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "Apple", data.Normalize("apple"))
	assert.Equal(t, "Apple", data.Normalize("  Apple  "))
	assert.Equal(t, "", data.Normalize("   "))
	assert.Equal(t, "Éclair", data.Normalize("éclair"))
	assert.Equal(t, "New Zealand", data.Normalize("new Zealand"))
}
