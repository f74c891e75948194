package aggregation

import "github.com/caoimherice/FoodMiles/internal/data"

// LegResolver looks up an item and hands back its legs in storage order.
// The order matters downstream: it is the traversal order of the journey
// and therefore the order path points accumulate.
type LegResolver struct {
	Items data.ItemDataService
}

func NewLegResolver(items data.ItemDataService) *LegResolver {
	return &LegResolver{
		Items: items,
	}
}

func (lr *LegResolver) Resolve(ref data.ItemRef) ([]data.LegDTO, error) {
	item, err := lr.Items.GetItem(ref)
	if err != nil {
		return nil, err
	}
	return item.Legs, nil
}
