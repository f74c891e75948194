package aggregation_test

import (
	"errors"
	"testing"
	"time"

	"github.com/caoimherice/FoodMiles/internal/aggregation"
	"github.com/caoimherice/FoodMiles/internal/data"
	"github.com/caoimherice/FoodMiles/internal/exceptions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryItems struct {
	items map[string]data.ItemDTO
}

func (m *memoryItems) GetItem(ref data.ItemRef) (data.ItemDTO, error) {
	item, ok := m.items[ref.ItemId()]
	if !ok {
		return data.ItemDTO{}, exceptions.NotFound("item", ref.ItemId())
	}
	return item, nil
}

func (m *memoryItems) PutItem(input data.ItemInputDTO) (data.ItemDTO, error) {
	item := data.ItemDTO{
		Name:   data.Normalize(*input.Name),
		Origin: data.Normalize(*input.Origin),
	}
	if input.Legs != nil {
		item.Legs = *input.Legs
	}
	m.items[data.ItemRef{Name: item.Name, Origin: item.Origin}.ItemId()] = item
	return item, nil
}

func (m *memoryItems) ScanItems(filter data.ItemFilter) ([]data.ItemDTO, error) {
	var matches []data.ItemDTO
	for _, item := range m.items {
		if item.Name == filter.Name || item.Origin == filter.Origin {
			matches = append(matches, item)
		}
	}
	return matches, nil
}

type memoryCatalog struct {
	routes  map[string]data.RouteDTO
	latency map[string]time.Duration
}

func routeId(origin, destination string) string {
	return origin + " -> " + destination
}

func (m *memoryCatalog) GetRoute(origin string, destination string) (data.RouteDTO, error) {
	id := routeId(origin, destination)
	if delay, ok := m.latency[id]; ok {
		time.Sleep(delay)
	}
	route, ok := m.routes[id]
	if !ok {
		return data.RouteDTO{}, exceptions.NotFound("route", id)
	}
	return route, nil
}

func (m *memoryCatalog) PutRoute(input data.RouteInputDTO) (data.RouteDTO, error) {
	route := data.RouteDTO{
		Origin:      data.Normalize(*input.Origin),
		Destination: data.Normalize(*input.Destination),
		Distance:    *input.Distance,
		Emissions:   *input.Emissions,
		LeadTime:    *input.LeadTime,
	}
	if input.Coordinates != nil {
		route.Coordinates = *input.Coordinates
	}
	m.routes[routeId(route.Origin, route.Destination)] = route
	return route, nil
}

type memoryShopping struct {
	entries map[string][]data.ShoppingListEntryDTO
	deleted []string
}

func (m *memoryShopping) QueryEntries(userId string, params data.QueryParams) (data.QueryResults[data.ShoppingListEntryDTO], error) {
	return data.QueryResults[data.ShoppingListEntryDTO]{
		Items: m.entries[userId],
	}, nil
}

func (m *memoryShopping) PutEntry(userId string, ref data.ItemRef) (data.ShoppingListEntryDTO, error) {
	entry := data.ShoppingListEntryDTO{
		UserId: userId,
		ItemId: ref.ItemId(),
	}
	m.entries[userId] = append(m.entries[userId], entry)
	return entry, nil
}

func (m *memoryShopping) DeleteEntry(userId string, itemId string) error {
	m.deleted = append(m.deleted, itemId)
	remaining := make([]data.ShoppingListEntryDTO, 0, len(m.entries[userId]))
	for _, entry := range m.entries[userId] {
		if entry.ItemId != itemId {
			remaining = append(remaining, entry)
		}
	}
	m.entries[userId] = remaining
	return nil
}

type memorySaved struct {
	lists map[string]data.SavedListDTO
}

func (m *memorySaved) QuerySavedLists(userId string, params data.QueryParams) (data.QueryResults[data.SavedListDTO], error) {
	var items []data.SavedListDTO
	for _, list := range m.lists {
		items = append(items, list)
	}
	return data.QueryResults[data.SavedListDTO]{Items: items}, nil
}

func (m *memorySaved) GetSavedList(userId string, listId string) (data.SavedListDTO, error) {
	list, ok := m.lists[listId]
	if !ok {
		return data.SavedListDTO{}, exceptions.NotFound("savedList", listId)
	}
	return list, nil
}

func (m *memorySaved) PutSavedList(userId string, input data.SavedListInputDTO) (data.SavedListDTO, error) {
	list := data.SavedListDTO{
		ListId:  "list-1",
		ItemIds: *input.ItemIds,
	}
	m.lists[list.ListId] = list
	return list, nil
}

func newFixture() (*memoryItems, *memoryCatalog, *aggregation.ItemAggregator) {
	items := &memoryItems{items: map[string]data.ItemDTO{
		"Apple,Spain": {
			Name:   "Apple",
			Origin: "Spain",
			Legs: []data.LegDTO{
				{Origin: "Spain", Destination: "Rotterdam"},
				{Origin: "Rotterdam", Destination: "Dublin"},
			},
		},
		"Banana,Ecuador": {
			Name:   "Banana",
			Origin: "Ecuador",
			Legs: []data.LegDTO{
				{Origin: "Ecuador", Destination: "Dublin"},
			},
		},
	}}
	catalog := &memoryCatalog{
		routes: map[string]data.RouteDTO{
			"Spain -> Rotterdam": {
				Origin:      "Spain",
				Destination: "Rotterdam",
				Distance:    100,
				Emissions:   20,
				LeadTime:    2,
				Coordinates: [][2]float64{{-3.7, 40.4}, {4.4, 51.9}},
			},
			"Rotterdam -> Dublin": {
				Origin:      "Rotterdam",
				Destination: "Dublin",
				Distance:    50,
				Emissions:   10,
				LeadTime:    1,
				Coordinates: [][2]float64{{4.4, 51.9}, {-6.2, 53.3}},
			},
			"Ecuador -> Dublin": {
				Origin:      "Ecuador",
				Destination: "Dublin",
				Distance:    5000,
				Emissions:   120,
				LeadTime:    14,
			},
		},
		latency: map[string]time.Duration{},
	}
	return items, catalog, aggregation.NewItemAggregator(items, catalog)
}

func TestAggregateItem(t *testing.T) {
	_, _, aggregator := newFixture()
	summary, err := aggregator.Aggregate(data.ItemRef{Name: "Apple", Origin: "Spain"})
	require.NoError(t, err)
	assert.Equal(t, "Apple", summary.Name)
	assert.Equal(t, "Spain", summary.Origin)
	assert.Equal(t, 150, summary.Distance)
	assert.Equal(t, 30, summary.Emissions)
	assert.Equal(t, 3, summary.LeadTime)
	assert.Nil(t, summary.Path)
}

func TestAggregateItemNoLegs(t *testing.T) {
	items, _, aggregator := newFixture()
	items.items["Potato,Ireland"] = data.ItemDTO{Name: "Potato", Origin: "Ireland"}
	summary, err := aggregator.Aggregate(data.ItemRef{Name: "Potato", Origin: "Ireland"})
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Distance)
	assert.Equal(t, 0, summary.Emissions)
	assert.Equal(t, 0, summary.LeadTime)
}

func TestAggregateItemMissingRoute(t *testing.T) {
	_, catalog, aggregator := newFixture()
	delete(catalog.routes, "Rotterdam -> Dublin")
	_, err := aggregator.Aggregate(data.ItemRef{Name: "Apple", Origin: "Spain"})
	var nfe *exceptions.NotFoundError
	require.True(t, errors.As(err, &nfe))
	assert.Equal(t, "route", nfe.Resource)
	assert.Equal(t, "Rotterdam -> Dublin", nfe.Id)
}

func TestAggregateItemMissingItem(t *testing.T) {
	_, _, aggregator := newFixture()
	_, err := aggregator.Aggregate(data.ItemRef{Name: "Kiwi", Origin: "Italy"})
	var nfe *exceptions.NotFoundError
	require.True(t, errors.As(err, &nfe))
	assert.Equal(t, "item", nfe.Resource)
}

func TestAggregateItemLowestIndexErrorWins(t *testing.T) {
	_, catalog, aggregator := newFixture()
	delete(catalog.routes, "Spain -> Rotterdam")
	delete(catalog.routes, "Rotterdam -> Dublin")
	// The second leg misses fast, the first misses slow. The reported
	// error must still be the first leg's.
	catalog.latency["Spain -> Rotterdam"] = 50 * time.Millisecond
	_, err := aggregator.Aggregate(data.ItemRef{Name: "Apple", Origin: "Spain"})
	var nfe *exceptions.NotFoundError
	require.True(t, errors.As(err, &nfe))
	assert.Equal(t, "Spain -> Rotterdam", nfe.Id)
}

func TestAggregateWithPath(t *testing.T) {
	_, _, aggregator := newFixture()
	summary, err := aggregator.AggregateWithPath(data.ItemRef{Name: "Apple", Origin: "Spain"})
	require.NoError(t, err)
	assert.Equal(t, 150, summary.Distance)
	// The shared Rotterdam endpoint appears once, not twice.
	require.Len(t, summary.Path, 3)
	assert.Equal(t, aggregation.Coordinate{Longitude: -3.7, Latitude: 40.4}, summary.Path[0])
	assert.Equal(t, aggregation.Coordinate{Longitude: 4.4, Latitude: 51.9}, summary.Path[1])
	assert.Equal(t, aggregation.Coordinate{Longitude: -6.2, Latitude: 53.3}, summary.Path[2])
}

func TestAggregateRefs(t *testing.T) {
	_, catalog, aggregator := newFixture()
	collection := aggregation.NewCollectionAggregator(aggregator, nil, nil)
	// Stagger latencies against source order: the first item resolves
	// slowest and still has to come back first.
	catalog.latency["Spain -> Rotterdam"] = 30 * time.Millisecond
	catalog.latency["Rotterdam -> Dublin"] = 20 * time.Millisecond
	refs := []data.ItemRef{
		{Name: "Apple", Origin: "Spain"},
		{Name: "Banana", Origin: "Ecuador"},
	}
	summary, err := collection.AggregateRefs(refs)
	require.NoError(t, err)
	require.Len(t, summary.Items, 2)
	assert.Equal(t, "Apple", summary.Items[0].Name)
	assert.Equal(t, "Banana", summary.Items[1].Name)
	assert.Equal(t, 5150, summary.TotalDistance)
	assert.Equal(t, 150, summary.TotalEmissions)
	assert.Equal(t, 17, summary.TotalLeadTime)
}

func TestAggregateRefsEmpty(t *testing.T) {
	_, _, aggregator := newFixture()
	collection := aggregation.NewCollectionAggregator(aggregator, nil, nil)
	summary, err := collection.AggregateRefs(nil)
	require.NoError(t, err)
	assert.Empty(t, summary.Items)
	assert.Equal(t, 0, summary.TotalDistance)
}

func TestAggregateList(t *testing.T) {
	_, _, aggregator := newFixture()
	shopping := &memoryShopping{entries: map[string][]data.ShoppingListEntryDTO{
		"shopper-123": {
			{UserId: "shopper-123", ItemId: "Apple,Spain"},
			{UserId: "shopper-123", ItemId: "Banana,Ecuador"},
		},
	}}
	collection := aggregation.NewCollectionAggregator(aggregator, shopping, nil)
	summary, err := collection.AggregateList("shopper-123")
	require.NoError(t, err)
	require.Len(t, summary.Items, 2)
	assert.Equal(t, 5150, summary.TotalDistance)
}

func TestAggregateListMalformedEntry(t *testing.T) {
	_, _, aggregator := newFixture()
	shopping := &memoryShopping{entries: map[string][]data.ShoppingListEntryDTO{
		"shopper-123": {
			{UserId: "shopper-123", ItemId: "Apple"},
		},
	}}
	collection := aggregation.NewCollectionAggregator(aggregator, shopping, nil)
	_, err := collection.AggregateList("shopper-123")
	var ake *exceptions.AmbiguousKeyError
	require.True(t, errors.As(err, &ake))
}

func TestAggregateSaved(t *testing.T) {
	_, _, aggregator := newFixture()
	saved := &memorySaved{lists: map[string]data.SavedListDTO{
		"list-1": {
			ListId:  "list-1",
			ItemIds: []string{"Apple,Spain", "Banana,Ecuador"},
		},
	}}
	collection := aggregation.NewCollectionAggregator(aggregator, nil, saved)
	first, err := collection.AggregateSaved("shopper-123", "list-1")
	require.NoError(t, err)
	second, err := collection.AggregateSaved("shopper-123", "list-1")
	require.NoError(t, err)
	// Same catalog, same answer.
	assert.Equal(t, first, second)
	assert.Equal(t, 5150, first.TotalDistance)

	_, err = collection.AggregateSaved("shopper-123", "list-2")
	var nfe *exceptions.NotFoundError
	require.True(t, errors.As(err, &nfe))
}
