// Package admins is the typed client for admin account management.
package admins

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

const resource = "admins"

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

// List returns one page of admin accounts.
func (c *Client) List(ctx context.Context, page pagination.Params) (*AdminPage, error) {
	query := page.Query()
	return querycache.FetchAs(ctx, c.cache, resource, query, func(ctx context.Context) (*AdminPage, error) {
		var result AdminPage
		if err := c.rest.Get(ctx, "/admins", query, &result); err != nil {
			return nil, err
		}
		return &result, nil
	})
}

// Get returns a single admin by id.
func (c *Client) Get(ctx context.Context, id int) (*Admin, error) {
	params := url.Values{}
	params.Set("id", strconv.Itoa(id))
	return querycache.FetchAs(ctx, c.cache, resource, params, func(ctx context.Context) (*Admin, error) {
		var result Admin
		if err := c.rest.Get(ctx, fmt.Sprintf("/admins/%d", id), nil, &result); err != nil {
			return nil, err
		}
		return &result, nil
	})
}

// Create provisions an admin account and invalidates cached listings.
func (c *Client) Create(ctx context.Context, input CreateAdminInput) (*Admin, error) {
	if err := validators.Struct(input); err != nil {
		return nil, err
	}
	var result Admin
	if err := c.rest.Post(ctx, "/admins", input, &result); err != nil {
		return nil, err
	}
	c.cache.Invalidate(resource)
	return &result, nil
}

// Delete removes an admin account and invalidates cached listings.
func (c *Client) Delete(ctx context.Context, id int) (string, error) {
	var result types.MessageResponse
	if err := c.rest.Delete(ctx, fmt.Sprintf("/admins/%d", id), &result); err != nil {
		return "", err
	}
	c.cache.Invalidate(resource)
	return result.Message, nil
}
