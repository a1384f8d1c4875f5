package cart

import "github.com/angelmondragon/storefront-state/pkg/types"

// Action is the sealed set of cart transitions consumed by Apply.
type Action interface {
	actionName() string
}

// AddItem appends the item with quantity 1, or bumps the quantity of an
// existing line with the same id. The payload of a duplicate add is otherwise
// ignored; the catalog entry captured at first add stays authoritative.
type AddItem struct {
	Item types.Item
}

// RemoveItem drops the line with the given id. Absent ids are a no-op.
type RemoveItem struct {
	ID int64
}

// UpdateQuantity sets a line's quantity, clamped at zero. A clamped-to-zero
// line is removed entirely.
type UpdateQuantity struct {
	ID       int64
	Quantity int
}

// Clear resets the cart to empty.
type Clear struct{}

// Load replaces the state wholesale; used once, at hydration, with a
// pre-sanitized snapshot.
type Load struct {
	State State
}

func (AddItem) actionName() string        { return "add_item" }
func (RemoveItem) actionName() string     { return "remove_item" }
func (UpdateQuantity) actionName() string { return "update_quantity" }
func (Clear) actionName() string          { return "clear_cart" }
func (Load) actionName() string           { return "load_cart" }

// ActionName labels an action for logs and metrics.
func ActionName(action Action) string {
	if action == nil {
		return "unknown"
	}
	return action.actionName()
}
