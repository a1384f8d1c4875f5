package wishlist

import (
	"encoding/json"

	"github.com/angelmondragon/storefront-state/internal/persist"
	pkgerrors "github.com/angelmondragon/storefront-state/pkg/errors"
	"github.com/angelmondragon/storefront-state/pkg/types"
	"github.com/shopspring/decimal"
)

// snapshot is the persisted wire shape.
type snapshot struct {
	Items     []types.Item `json:"items"`
	ItemCount int          `json:"itemCount"`
}

type envelope struct {
	Items json.RawMessage `json:"items"`
}

// EncodeSnapshot serializes the complete state for a write-through. Empty
// wishlists serialize with an empty items list, not null.
func EncodeSnapshot(state State) (string, error) {
	items := state.Items
	if items == nil {
		items = []types.Item{}
	}
	raw, err := json.Marshal(snapshot{
		Items:     items,
		ItemCount: state.ItemCount,
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode wishlist snapshot")
	}
	return string(raw), nil
}

// DecodeSnapshot parses and sanitizes a persisted payload. The returned state
// always satisfies the wishlist invariants: unique ids and a count equal to
// the surviving item list's length. Warnings record repairs; the error is
// non-nil only when the payload is not a JSON object at all.
func DecodeSnapshot(payload string) (State, persist.Warnings, error) {
	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return EmptyState(), nil, pkgerrors.Wrap(pkgerrors.CodeSnapshotInvalid, err, "parse wishlist snapshot")
	}

	var warnings persist.Warnings

	var rawItems []json.RawMessage
	if len(env.Items) > 0 {
		if err := json.Unmarshal(env.Items, &rawItems); err != nil {
			warnings.Addf("items is not a list, coerced to empty")
			rawItems = nil
		}
	}

	items := make([]types.Item, 0, len(rawItems))
	seen := make(map[int64]struct{}, len(rawItems))
	for i, raw := range rawItems {
		var item types.Item
		if err := json.Unmarshal(raw, &item); err != nil {
			warnings.Addf("item %d dropped: %v", i, err)
			continue
		}
		if err := persist.ValidateStruct(item); err != nil {
			warnings.Addf("item %d dropped: %v", i, err)
			continue
		}
		if _, dup := seen[item.ID]; dup {
			warnings.Addf("item %d dropped: duplicate id %d", i, item.ID)
			continue
		}
		if item.Price.IsNegative() {
			warnings.Addf("item %d: negative price clamped to zero", i)
			item.Price = decimal.Zero
		}
		seen[item.ID] = struct{}{}
		items = append(items, item)
	}
	if len(items) == 0 {
		items = nil
	}

	return recompute(items), warnings, nil
}
