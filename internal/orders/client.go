// Package orders is the typed client for the back-office orders resource.
package orders

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sockshoplabs/storefront-go/pkg/pagination"
	"github.com/sockshoplabs/storefront-go/pkg/querycache"
	"github.com/sockshoplabs/storefront-go/pkg/rest"
	"github.com/sockshoplabs/storefront-go/pkg/types"
	"github.com/sockshoplabs/storefront-go/pkg/validators"
)

const resource = "orders"

type Client struct {
	rest  *rest.Client
	cache *querycache.Cache
}

func NewClient(transport *rest.Client, cache *querycache.Cache) (*Client, error) {
	if transport == nil {
		return nil, fmt.Errorf("transport required")
	}
	if cache == nil {
		return nil, fmt.Errorf("query cache required")
	}
	return &Client{rest: transport, cache: cache}, nil
}

// List returns one page of orders.
func (c *Client) List(ctx context.Context, page pagination.Params) (*OrderPage, error) {
	query := page.Query()
	return querycache.FetchAs(ctx, c.cache, resource, query, func(ctx context.Context) (*OrderPage, error) {
		var result OrderPage
		if err := c.rest.Get(ctx, "/orders", query, &result); err != nil {
			return nil, err
		}
		return &result, nil
	})
}

// Get returns a single order by id.
func (c *Client) Get(ctx context.Context, id string) (*Order, error) {
	params := url.Values{}
	params.Set("id", id)
	return querycache.FetchAs(ctx, c.cache, resource, params, func(ctx context.Context) (*Order, error) {
		var result Order
		if err := c.rest.Get(ctx, "/orders/"+url.PathEscape(id), nil, &result); err != nil {
			return nil, err
		}
		return &result, nil
	})
}

// Create places an order directly and invalidates cached listings.
func (c *Client) Create(ctx context.Context, input CreateOrderInput) (*Order, error) {
	if err := validators.Struct(input); err != nil {
		return nil, err
	}
	var result Order
	if err := c.rest.Post(ctx, "/orders", input, &result); err != nil {
		return nil, err
	}
	c.cache.Invalidate(resource)
	return &result, nil
}

// Delete cancels an order and invalidates cached listings.
func (c *Client) Delete(ctx context.Context, id string) (string, error) {
	var result types.MessageResponse
	if err := c.rest.Delete(ctx, "/orders/"+url.PathEscape(id), &result); err != nil {
		return "", err
	}
	c.cache.Invalidate(resource)
	return result.Message, nil
}
