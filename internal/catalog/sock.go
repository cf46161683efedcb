package catalog

import (
	"github.com/sockshoplabs/storefront-go/pkg/types"
)

// Variant is one size/stock combination of a sock.
type Variant struct {
	ID    int            `json:"id" validate:"required,gt=0"`
	Size  types.SockSize `json:"size" validate:"required,oneof=S M LG XL"`
	Stock int            `json:"stock" validate:"gte=0"`
}

// Sock is a storefront product.
type Sock struct {
	ID          int         `json:"id" validate:"required,gt=0"`
	Name        string      `json:"name" validate:"required"`
	Description string      `json:"description"`
	Price       types.Money `json:"price"`
	ImageURL    string      `json:"imageUrl" validate:"required"`
	Variants    []Variant   `json:"variants" validate:"dive"`
}

// SockPage is one page of the paginated sock listing.
type SockPage struct {
	Items  []Sock `json:"items" validate:"dive"`
	Total  int    `json:"total" validate:"gte=0"`
	Limit  int    `json:"limit" validate:"gte=1"`
	Offset int    `json:"offset" validate:"gte=0"`
}

// CreateSockInput is the admin payload for adding a sock to inventory.
type CreateSockInput struct {
	Name        string      `json:"name" validate:"required"`
	Description string      `json:"description"`
	Price       types.Money `json:"price"`
	ImageURL    string      `json:"imageUrl" validate:"required,url"`
	Variants    []Variant   `json:"variants" validate:"min=1,dive"`
}

// UpdateSockInput is the admin payload for editing a sock.
type UpdateSockInput struct {
	Name        string      `json:"name" validate:"required"`
	Description string      `json:"description"`
	Price       types.Money `json:"price"`
	ImageURL    string      `json:"imageUrl" validate:"required,url"`
	Variants    []Variant   `json:"variants" validate:"min=1,dive"`
}
