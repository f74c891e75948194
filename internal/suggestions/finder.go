// Package suggestions offers alternatives when an item lookup misses.
package suggestions

import (
	"github.com/caoimherice/FoodMiles/internal/data"
	"golang.org/x/exp/slices"
)

// Finder scans the catalog for items whose name or origin matches the
// failed lookup. It only ever runs on the not-found path, so the full
// scan cost stays off the hot path.
type Finder struct {
	Items data.ItemDataService
}

func NewFinder(items data.ItemDataService) *Finder {
	return &Finder{
		Items: items,
	}
}

// Find returns matching refs, deduplicated, empty (never an error) when
// nothing in the catalog matches.
func (f *Finder) Find(name string, origin string) ([]data.ItemRef, error) {
	matches, err := f.Items.ScanItems(data.ItemFilter{
		Name:   name,
		Origin: origin,
	})
	if err != nil {
		return nil, err
	}
	refs := make([]data.ItemRef, 0, len(matches))
	for _, item := range matches {
		ref := data.ItemRef{Name: item.Name, Origin: item.Origin}
		if slices.Contains(refs, ref) {
			continue
		}
		refs = append(refs, ref)
	}
	return refs, nil
}
