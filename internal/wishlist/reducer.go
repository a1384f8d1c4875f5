package wishlist

// Apply is the pure wishlist transition function. Add is idempotent per id;
// the count is re-derived from the item list after every action.
func Apply(state State, action Action) State {
	switch a := action.(type) {
	case AddItem:
		if state.Contains(a.Item.ID) {
			return state
		}
		next := state.clone()
		return recompute(append(next.Items, a.Item))

	case RemoveItem:
		next := state.clone()
		if i := next.indexOf(a.ID); i >= 0 {
			next.Items = append(next.Items[:i], next.Items[i+1:]...)
		}
		return recompute(next.Items)

	case Clear:
		return EmptyState()

	case Load:
		return a.State.clone()
	}

	return state
}
