package types

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Snapshots carry prices as bare JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Item is a catalog entry as carried by cart and wishlist snapshots. Identity
// is the ID; every other field is descriptive and passed through unchanged.
type Item struct {
	ID            int64            `json:"id" validate:"required"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Image         string           `json:"image"`
	Category      string           `json:"category"`
	Subcategory   string           `json:"subcategory,omitempty"`
}

// CartLine is an Item plus the quantity held in the cart. Wishlist membership
// is binary, so wishlists carry bare Items.
type CartLine struct {
	Item
	Quantity int `json:"quantity" validate:"gte=1"`
}

// LineTotal returns price multiplied by quantity.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
