package orders

import (
	"time"

	"github.com/sockshoplabs/storefront-go/pkg/types"
)

// OrderItem is a purchased line, snapshotted from the cart at checkout.
type OrderItem struct {
	SockVariantID int            `json:"sockVariantId" validate:"required,gt=0"`
	Name          string         `json:"name" validate:"required"`
	Quantity      int            `json:"quantity" validate:"gte=1"`
	Price         types.Money    `json:"price"`
	Size          types.SockSize `json:"size" validate:"required,oneof=S M LG XL"`
}

// Order is a placed order as the back-office sees it.
type Order struct {
	ID        string      `json:"id" validate:"required,uuid4"`
	Status    string      `json:"status" validate:"required,oneof=pending paid shipped cancelled"`
	Total     types.Money `json:"total"`
	Email     string      `json:"email" validate:"required,email"`
	CreatedAt time.Time   `json:"createdAt"`
	Items     []OrderItem `json:"items" validate:"min=1,dive"`
}

// CreateOrderInput is the back-office payload for placing an order on a
// shopper's behalf.
type CreateOrderInput struct {
	Email string      `json:"email" validate:"required,email"`
	Items []OrderItem `json:"items" validate:"min=1,dive"`
}

// OrderPage is one page of the paginated order listing.
type OrderPage struct {
	Items  []Order `json:"items" validate:"dive"`
	Total  int     `json:"total" validate:"gte=0"`
	Limit  int     `json:"limit" validate:"gte=1"`
	Offset int     `json:"offset" validate:"gte=0"`
}
