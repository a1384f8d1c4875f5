package cart

import "github.com/angelmondragon/storefront-state/pkg/types"

// Apply is the pure cart transition function. It never mutates the input
// state and recomputes derived totals over the full item list after every
// action, so the derived-field invariant holds by construction.
func Apply(state State, action Action) State {
	switch a := action.(type) {
	case AddItem:
		next := state.clone()
		if i := next.indexOf(a.Item.ID); i >= 0 {
			next.Items[i].Quantity++
			return recompute(next.Items)
		}
		return recompute(append(next.Items, types.CartLine{Item: a.Item, Quantity: 1}))

	case RemoveItem:
		next := state.clone()
		if i := next.indexOf(a.ID); i >= 0 {
			next.Items = append(next.Items[:i], next.Items[i+1:]...)
		}
		return recompute(next.Items)

	case UpdateQuantity:
		quantity := a.Quantity
		if quantity < 0 {
			quantity = 0
		}
		next := state.clone()
		i := next.indexOf(a.ID)
		if i < 0 {
			return recompute(next.Items)
		}
		if quantity == 0 {
			next.Items = append(next.Items[:i], next.Items[i+1:]...)
		} else {
			next.Items[i].Quantity = quantity
		}
		return recompute(next.Items)

	case Clear:
		return EmptyState()

	case Load:
		return a.State.clone()
	}

	return state
}
