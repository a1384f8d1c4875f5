package wishlist

import "github.com/angelmondragon/storefront-state/pkg/types"

// Action is the sealed set of wishlist transitions consumed by Apply.
type Action interface {
	actionName() string
}

// AddItem appends the item unless its id is already present; duplicate adds
// leave the state unchanged.
type AddItem struct {
	Item types.Item
}

// RemoveItem drops the item with the given id. Absent ids are a no-op.
type RemoveItem struct {
	ID int64
}

// Clear resets the wishlist to empty.
type Clear struct{}

// Load replaces the state wholesale; used once, at hydration.
type Load struct {
	State State
}

func (AddItem) actionName() string    { return "add_item" }
func (RemoveItem) actionName() string { return "remove_item" }
func (Clear) actionName() string      { return "clear_wishlist" }
func (Load) actionName() string       { return "load_wishlist" }

// ActionName labels an action for logs and metrics.
func ActionName(action Action) string {
	if action == nil {
		return "unknown"
	}
	return action.actionName()
}
