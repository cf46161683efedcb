// Package catalog is the typed client for the socks resource. Reads go
// through the query cache; every mutation invalidates the whole resource.
package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sockshoplabs/storefront-go/pkg/pagination"
	"github.com/sockshoplabs/storefront-go/pkg/querycache"
	"github.com/sockshoplabs/storefront-go/pkg/rest"
	"github.com/sockshoplabs/storefront-go/pkg/types"
	"github.com/sockshoplabs/storefront-go/pkg/validators"
)

const resource = "socks"

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

// List returns one page of socks.
func (c *Client) List(ctx context.Context, page pagination.Params) (*SockPage, error) {
	query := page.Query()
	return querycache.FetchAs(ctx, c.cache, resource, query, func(ctx context.Context) (*SockPage, error) {
		var result SockPage
		if err := c.rest.Get(ctx, "/socks", query, &result); err != nil {
			return nil, err
		}
		return &result, nil
	})
}

// Get returns a single sock by id.
func (c *Client) Get(ctx context.Context, id int) (*Sock, error) {
	params := url.Values{}
	params.Set("id", strconv.Itoa(id))
	return querycache.FetchAs(ctx, c.cache, resource, params, func(ctx context.Context) (*Sock, error) {
		var result Sock
		if err := c.rest.Get(ctx, fmt.Sprintf("/socks/%d", id), nil, &result); err != nil {
			return nil, err
		}
		return &result, nil
	})
}

// Create adds a sock to inventory and invalidates cached listings.
func (c *Client) Create(ctx context.Context, input CreateSockInput) (*Sock, error) {
	if err := validators.Struct(input); err != nil {
		return nil, err
	}
	var result Sock
	if err := c.rest.Post(ctx, "/socks", input, &result); err != nil {
		return nil, err
	}
	c.cache.Invalidate(resource)
	return &result, nil
}

// Update edits a sock and invalidates cached listings.
func (c *Client) Update(ctx context.Context, id int, input UpdateSockInput) (*Sock, error) {
	if err := validators.Struct(input); err != nil {
		return nil, err
	}
	var result Sock
	if err := c.rest.Put(ctx, fmt.Sprintf("/socks/%d", id), input, &result); err != nil {
		return nil, err
	}
	c.cache.Invalidate(resource)
	return &result, nil
}

// Delete removes a sock from inventory and invalidates cached listings.
func (c *Client) Delete(ctx context.Context, id int) (string, error) {
	var result types.MessageResponse
	if err := c.rest.Delete(ctx, fmt.Sprintf("/socks/%d", id), &result); err != nil {
		return "", err
	}
	c.cache.Invalidate(resource)
	return result.Message, nil
}
