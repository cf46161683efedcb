package cart

import (
	"github.com/sockshoplabs/storefront-go/pkg/types"
)

// LineItem is one product-variant row in the cart. Name, Price, and ImageURL
// are display snapshots taken at first add; a later add of the same variant
// never overwrites them.
type LineItem struct {
	SockVariantID int            `json:"sockVariantId" validate:"required,gt=0"`
	Name          string         `json:"name" validate:"required"`
	Quantity      int            `json:"quantity" validate:"gte=1"`
	Price         types.Money    `json:"price"`
	Size          types.SockSize `json:"size" validate:"required,oneof=S M LG XL"`
	ImageURL      string         `json:"imageUrl" validate:"required"`
}

// Snapshot is an immutable, insertion-ordered copy of the cart contents.
type Snapshot []LineItem

// Find returns the line for the given variant id.
func (s Snapshot) Find(sockVariantID int) (LineItem, bool) {
	for _, item := range s {
		if item.SockVariantID == sockVariantID {
			return item, true
		}
	}
	return LineItem{}, false
}

// Subtotal sums price times quantity across all lines.
func (s Snapshot) Subtotal() types.Money {
	total := types.MoneyFromCents(0)
	for _, item := range s {
		total = total.Add(item.Price.MulQty(item.Quantity))
	}
	return total
}

// TotalQuantity counts units across all lines.
func (s Snapshot) TotalQuantity() int {
	var total int
	for _, item := range s {
		total += item.Quantity
	}
	return total
}
