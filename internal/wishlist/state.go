// Package wishlist holds the reducer-driven wishlist state. Membership is
// binary: an ordered, id-unique item list and a derived count.
package wishlist

import (
	"github.com/angelmondragon/storefront-state/pkg/types"
)

// State is a wishlist snapshot. ItemCount always equals len(Items).
type State struct {
	Items     []types.Item
	ItemCount int
}

// EmptyState returns the default wishlist.
func EmptyState() State {
	return State{}
}

func (s State) indexOf(id int64) int {
	for i, item := range s.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether an item with the given id exists.
func (s State) Contains(id int64) bool {
	return s.indexOf(id) >= 0
}

func (s State) clone() State {
	items := make([]types.Item, len(s.Items))
	copy(items, s.Items)
	return State{Items: items, ItemCount: s.ItemCount}
}

func recompute(items []types.Item) State {
	return State{Items: items, ItemCount: len(items)}
}
