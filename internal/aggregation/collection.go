package aggregation

import (
	"sync"

	"github.com/caoimherice/FoodMiles/internal/data"
)

// CollectionAggregator folds a set of item refs, a live shopping list or
// a saved list into one CollectionSummary. Items aggregate concurrently;
// the result lists summaries in source iteration order.
type CollectionAggregator struct {
	Items    *ItemAggregator
	Shopping data.ShoppingListDataService
	Saved    data.SavedListDataService
}

func NewCollectionAggregator(items *ItemAggregator, shopping data.ShoppingListDataService, saved data.SavedListDataService) *CollectionAggregator {
	return &CollectionAggregator{
		Items:    items,
		Shopping: shopping,
		Saved:    saved,
	}
}

// AggregateRefs fans out one item aggregation per ref and folds the
// summaries in ref order. Fail-fast on the first (lowest-index) error.
func (ca *CollectionAggregator) AggregateRefs(refs []data.ItemRef) (CollectionSummary, error) {
	summaries := make([]ItemSummary, len(refs))
	errs := make([]error, len(refs))
	var wg sync.WaitGroup
	for i, ref := range refs {
		wg.Add(1)
		go func(i int, ref data.ItemRef) {
			defer wg.Done()
			summaries[i], errs[i] = ca.Items.Aggregate(ref)
		}(i, ref)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return CollectionSummary{}, err
		}
	}
	collection := CollectionSummary{
		Items: summaries,
	}
	for _, summary := range summaries {
		collection.TotalDistance += summary.Distance
		collection.TotalEmissions += summary.Emissions
		collection.TotalLeadTime += summary.LeadTime
	}
	return collection, nil
}

func _parseRefs(itemIds []string) ([]data.ItemRef, error) {
	refs := make([]data.ItemRef, len(itemIds))
	for i, itemId := range itemIds {
		ref, err := data.ParseItemId(itemId)
		if err != nil {
			return nil, err
		}
		refs[i] = ref
	}
	return refs, nil
}

// AggregateList resolves the live shopping list for a user, in store
// query order.
func (ca *CollectionAggregator) AggregateList(userId string) (CollectionSummary, error) {
	var refs []data.ItemRef
	params := data.QueryParams{}
	for {
		results, err := ca.Shopping.QueryEntries(userId, params)
		if err != nil {
			return CollectionSummary{}, err
		}
		for _, entry := range results.Items {
			ref, err := data.ParseItemId(entry.ItemId)
			if err != nil {
				return CollectionSummary{}, err
			}
			refs = append(refs, ref)
		}
		if results.NextToken == nil {
			break
		}
		params.NextToken = results.NextToken
	}
	return ca.AggregateRefs(refs)
}

// AggregateSaved re-resolves a frozen list exactly the way a live one is
// resolved: same lookups, same fold, so totals always reflect the current
// catalog. Re-running it without catalog changes yields identical values.
func (ca *CollectionAggregator) AggregateSaved(userId string, listId string) (CollectionSummary, error) {
	saved, err := ca.Saved.GetSavedList(userId, listId)
	if err != nil {
		return CollectionSummary{}, err
	}
	refs, err := _parseRefs(saved.ItemIds)
	if err != nil {
		return CollectionSummary{}, err
	}
	return ca.AggregateRefs(refs)
}
