// Package newsletter is the typed client for newsletter signups.
package newsletter

import (
	"context"
	"fmt"

	"github.com/sockshoplabs/storefront-go/pkg/rest"
	"github.com/sockshoplabs/storefront-go/pkg/types"
	"github.com/sockshoplabs/storefront-go/pkg/validators"
)

type subscribeInput struct {
	Email string `json:"email" validate:"required,email"`
}

type Client struct {
	rest *rest.Client
}

func NewClient(transport *rest.Client) (*Client, error) {
	if transport == nil {
		return nil, fmt.Errorf("transport required")
	}
	return &Client{rest: transport}, nil
}

// Subscribe signs an email address up and returns the server's message.
func (c *Client) Subscribe(ctx context.Context, email string) (string, error) {
	input := subscribeInput{Email: email}
	if err := validators.Struct(input); err != nil {
		return "", err
	}
	var result types.MessageResponse
	if err := c.rest.Post(ctx, "/newsletter/subscribe", input, &result); err != nil {
		return "", err
	}
	return result.Message, nil
}
