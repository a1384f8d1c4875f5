// Package cart holds the reducer-driven shopping cart state: an ordered,
// id-unique list of lines plus derived totals, mutated only through Apply and
// persisted whole after every accepted mutation.
package cart

import (
	"github.com/angelmondragon/storefront-state/pkg/types"
	"github.com/shopspring/decimal"
)

// State is a cart snapshot. Total and ItemCount are derived from Items on
// every transition and are never set independently.
type State struct {
	Items     []types.CartLine
	Total     decimal.Decimal
	ItemCount int
}

// EmptyState returns the default cart: no items, zero totals.
func EmptyState() State {
	return State{Items: nil, Total: decimal.Zero, ItemCount: 0}
}

// indexOf returns the position of the line with the given id, or -1.
func (s State) indexOf(id int64) int {
	for i, line := range s.Items {
		if line.ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether a line with the given id exists.
func (s State) Contains(id int64) bool {
	return s.indexOf(id) >= 0
}

// Quantity returns the quantity held for the given id, zero when absent.
func (s State) Quantity(id int64) int {
	if i := s.indexOf(id); i >= 0 {
		return s.Items[i].Quantity
	}
	return 0
}

// clone returns a state whose Items slice is safe to mutate.
func (s State) clone() State {
	items := make([]types.CartLine, len(s.Items))
	copy(items, s.Items)
	return State{Items: items, Total: s.Total, ItemCount: s.ItemCount}
}

// recompute derives Total and ItemCount with a full pass over items. O(n) per
// mutation, which is fine at cart sizes.
func recompute(items []types.CartLine) State {
	total := decimal.Zero
	count := 0
	for _, line := range items {
		total = total.Add(line.LineTotal())
		count += line.Quantity
	}
	return State{Items: items, Total: total, ItemCount: count}
}
