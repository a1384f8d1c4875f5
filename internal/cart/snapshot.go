package cart

import (
	"encoding/json"

	"github.com/angelmondragon/storefront-state/internal/persist"
	pkgerrors "github.com/angelmondragon/storefront-state/pkg/errors"
	"github.com/angelmondragon/storefront-state/pkg/types"
	"github.com/shopspring/decimal"
)

// snapshot is the persisted wire shape. Totals are written for external
// readers of the slot; decoding derives them from items regardless.
type snapshot struct {
	Items     []types.CartLine `json:"items"`
	Total     decimal.Decimal  `json:"total"`
	ItemCount int              `json:"itemCount"`
}

// envelope tolerates wrong-typed fields so a half-broken payload still
// yields whatever items survive sanitizing.
type envelope struct {
	Items json.RawMessage `json:"items"`
}

// EncodeSnapshot serializes the complete state for a write-through. Empty
// carts serialize with an empty items list, not null.
func EncodeSnapshot(state State) (string, error) {
	items := state.Items
	if items == nil {
		items = []types.CartLine{}
	}
	raw, err := json.Marshal(snapshot{
		Items:     items,
		Total:     state.Total,
		ItemCount: state.ItemCount,
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart snapshot")
	}
	return string(raw), nil
}

// DecodeSnapshot parses and sanitizes a persisted payload. The returned state
// always satisfies the cart invariants: unique ids, quantities >= 1,
// non-negative prices, derived totals recomputed from the surviving items.
// Warnings record every repair; the error is non-nil only when the payload is
// not a JSON object at all, in which case callers fall back to empty state.
func DecodeSnapshot(payload string) (State, persist.Warnings, error) {
	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return EmptyState(), nil, pkgerrors.Wrap(pkgerrors.CodeSnapshotInvalid, err, "parse cart snapshot")
	}

	var warnings persist.Warnings

	var rawItems []json.RawMessage
	if len(env.Items) > 0 {
		if err := json.Unmarshal(env.Items, &rawItems); err != nil {
			warnings.Addf("items is not a list, coerced to empty")
			rawItems = nil
		}
	}

	items := make([]types.CartLine, 0, len(rawItems))
	seen := make(map[int64]struct{}, len(rawItems))
	for i, raw := range rawItems {
		var line types.CartLine
		if err := json.Unmarshal(raw, &line); err != nil {
			warnings.Addf("item %d dropped: %v", i, err)
			continue
		}
		if err := persist.ValidateStruct(line); err != nil {
			warnings.Addf("item %d dropped: %v", i, err)
			continue
		}
		if _, dup := seen[line.ID]; dup {
			warnings.Addf("item %d dropped: duplicate id %d", i, line.ID)
			continue
		}
		if line.Price.IsNegative() {
			warnings.Addf("item %d: negative price clamped to zero", i)
			line.Price = decimal.Zero
		}
		seen[line.ID] = struct{}{}
		items = append(items, line)
	}
	if len(items) == 0 {
		items = nil
	}

	return recompute(items), warnings, nil
}
