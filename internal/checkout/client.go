// Package checkout drives the payment-provider boundary. The provider itself
// is opaque: the client sends the cart snapshot, receives a redirect URL, and
// later confirms the callback. A confirmed checkout empties the cart.
package checkout

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/sockshoplabs/storefront-go/internal/cart"
	"github.com/sockshoplabs/storefront-go/pkg/config"
	pkgerrors "github.com/sockshoplabs/storefront-go/pkg/errors"
	"github.com/sockshoplabs/storefront-go/pkg/logger"
	"github.com/sockshoplabs/storefront-go/pkg/querycache"
	"github.com/sockshoplabs/storefront-go/pkg/rest"
	"github.com/sockshoplabs/storefront-go/pkg/types"
)

type startRequest struct {
	Items     []cart.LineItem `json:"items"`
	Subtotal  types.Money     `json:"subtotal"`
	ReturnURL string          `json:"returnUrl"`
}

// StartResponse carries the provider redirect for the pending checkout.
type StartResponse struct {
	CheckoutID  string `json:"checkoutId" validate:"required"`
	RedirectURL string `json:"redirectUrl" validate:"required,url"`
}

// ConfirmResponse reports the order created from a completed checkout.
type ConfirmResponse struct {
	OrderID string `json:"orderId" validate:"required"`
	Message string `json:"message" validate:"required"`
}

type Client struct {
	rest      *rest.Client
	cart      *cart.Manager
	cache     *querycache.Cache
	returnURL string
	logg      *logger.Logger
}

func NewClient(transport *rest.Client, manager *cart.Manager, cache *querycache.Cache, cfg config.CheckoutConfig, logg *logger.Logger) (*Client, error) {
	if transport == nil {
		return nil, fmt.Errorf("transport required")
	}
	if manager == nil {
		return nil, fmt.Errorf("cart manager required")
	}
	if cache == nil {
		return nil, fmt.Errorf("query cache required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Client{
		rest:      transport,
		cart:      manager,
		cache:     cache,
		returnURL: cfg.ReturnURL,
		logg:      logg,
	}, nil
}

// Start submits the current cart and returns the provider redirect. The cart
// is left untouched until the checkout is confirmed.
func (c *Client) Start(ctx context.Context) (*StartResponse, error) {
	items := c.cart.Items()
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	headers := http.Header{}
	headers.Set("Idempotency-Key", uuid.NewString())

	body := startRequest{
		Items:     items,
		Subtotal:  items.Subtotal(),
		ReturnURL: c.returnURL,
	}
	var result StartResponse
	if err := c.rest.Do(ctx, http.MethodPost, "/checkout", nil, headers, body, &result); err != nil {
		return nil, err
	}

	c.logg.Info(c.logg.WithField(ctx, "checkout_id", result.CheckoutID), "checkout started")
	return &result, nil
}

// Confirm completes the checkout named by the provider callback. On success
// the cart empties and cached order listings refetch.
func (c *Client) Confirm(ctx context.Context, checkoutID string) (*ConfirmResponse, error) {
	if checkoutID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "checkout id is required")
	}

	var result ConfirmResponse
	if err := c.rest.Post(ctx, "/checkout/"+url.PathEscape(checkoutID)+"/confirm", nil, &result); err != nil {
		return nil, err
	}

	if _, err := c.cart.Empty(ctx); err != nil {
		// Order exists server-side either way; the stale local cart is the
		// lesser problem, but the caller should hear about it.
		return &result, err
	}
	c.cache.Invalidate("orders")

	c.logg.Info(c.logg.WithField(ctx, "order_id", result.OrderID), "checkout confirmed")
	return &result, nil
}
